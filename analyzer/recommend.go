package analyzer

import (
	"fmt"
	"strings"
)

// Recommendation knowledge base. Each constructor is a typed template:
// dynamic values are function parameters, so a missing value is a
// compile error rather than a leaked placeholder in output.

// --- discoverability ---

func recNoHTTPS() Recommendation {
	return Recommendation{
		Problem:     "The page is not served over HTTPS.",
		Solution:    "Install a TLS certificate and redirect all HTTP traffic to HTTPS.",
		Explanation: "AI crawlers and search engines treat unencrypted pages as less trustworthy, and some skip them entirely.",
		Impact:      9,
	}
}

func recBadStatus(code int) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("The page responded with HTTP status %d.", code),
		Solution:    "Make the canonical URL return a 200 response without redirects or errors.",
		Explanation: "Crawlers abandon pages that error or bounce through redirect chains.",
		Impact:      8,
	}
}

func recFetchFailed(errMsg string) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("The page could not be fetched: %s.", errMsg),
		Solution:    "Verify the URL resolves and the server responds within a reasonable timeout.",
		Impact:      10,
	}
}

func recRobotsMissing() Recommendation {
	return Recommendation{
		Problem:     "No robots.txt file was found.",
		Solution:    "Publish a robots.txt that explicitly allows the AI crawlers you want to reach.",
		Explanation: "Without robots.txt, crawler access is unpredictable; many AI bots treat ambiguity conservatively.",
		Impact:      6,
	}
}

func recBotsBlocked(blocked []string) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("robots.txt blocks %d AI crawler(s): %s.", len(blocked), strings.Join(blocked, ", ")),
		Solution:    "Remove the 'Disallow: /' rule for these user agents, or add explicit Allow rules for them.",
		Explanation: "Blocked AI crawlers cannot read the page at all, so it can never appear in their answers.",
		Impact:      10,
	}
}

func recNoSitemap() Recommendation {
	return Recommendation{
		Problem:     "No XML sitemap was found.",
		Solution:    "Generate a sitemap.xml and reference it from robots.txt.",
		Explanation: "Sitemaps help crawlers discover and prioritize pages they would otherwise miss.",
		Impact:      5,
	}
}

// --- structured data ---

func recNoOwnerEntity() Recommendation {
	return Recommendation{
		Problem:     "No Organization or Person entity identifies the site owner.",
		Solution:    "Add an Organization (or Person) JSON-LD entity with name and url.",
		Explanation: "Answer engines use the owner entity to attribute content to a known publisher.",
		Impact:      7,
	}
}

func recOwnerIncomplete(entityType string, missing []string) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The %s entity is missing: %s.", entityType, strings.Join(missing, ", ")),
		Solution: fmt.Sprintf("Fill in the %s properties on the %s entity.", strings.Join(missing, " and "), entityType),
		Impact:   6,
	}
}

func recOrgNoLogo() Recommendation {
	return Recommendation{
		Problem:  "The Organization entity has no logo.",
		Solution: "Add a logo property pointing to a square image of at least 112x112px.",
		Impact:   4,
	}
}

func recOrgNoSameAs() Recommendation {
	return Recommendation{
		Problem:     "The Organization entity has no sameAs links.",
		Solution:    "Add sameAs links to official social profiles and knowledge-base pages.",
		Explanation: "sameAs links let engines reconcile the organization with existing knowledge graph entries.",
		Impact:      5,
	}
}

func recNoWebSite() Recommendation {
	return Recommendation{
		Problem:  "No WebSite entity is declared.",
		Solution: "Add a WebSite JSON-LD entity with name and url.",
		Impact:   5,
	}
}

func recNoSearchAction() Recommendation {
	return Recommendation{
		Problem:  "The WebSite entity declares no SearchAction.",
		Solution: "Add a potentialAction of type SearchAction with a target URL template.",
		Impact:   3,
	}
}

func recNoBreadcrumb() Recommendation {
	return Recommendation{
		Problem:  "No BreadcrumbList entity is declared.",
		Solution: "Add a BreadcrumbList JSON-LD entity describing the page's position in the site.",
		Impact:   4,
	}
}

func recNoMainEntity() Recommendation {
	return Recommendation{
		Problem:     "No main entity schema was found for this page.",
		Solution:    "Add a JSON-LD entity matching the page's content: Article, Product, LocalBusiness or Service.",
		Explanation: "Without a main entity, answer engines must guess what the page is about.",
		Impact:      9,
	}
}

func recMainEntityMissingProp(entityType, prop string, impact int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The %s entity is missing the %s property.", entityType, prop),
		Solution: fmt.Sprintf("Add %s to the %s entity.", prop, entityType),
		Impact:   impact,
	}
}

func recAuthorPlainText() Recommendation {
	return Recommendation{
		Problem:     "The article's author is plain text instead of a linked Person entity.",
		Solution:    "Model the author as a Person object with name and url (or an @id reference).",
		Explanation: "A linked author entity lets engines verify authorship and surface author expertise.",
		Impact:      6,
	}
}

func recPublisherNotLinked() Recommendation {
	return Recommendation{
		Problem:  "The article's publisher is missing or not a linked Organization.",
		Solution: "Model publisher as an Organization object with name and logo.",
		Impact:   5,
	}
}

func recProviderNotLinked() Recommendation {
	return Recommendation{
		Problem:  "The service's provider is missing or not a linked Organization.",
		Solution: "Model provider as an Organization object with name and url.",
		Impact:   6,
	}
}

func recOffersMissing() Recommendation {
	return Recommendation{
		Problem:     "The Product entity has no offers.",
		Solution:    "Add an Offer with price, priceCurrency and availability.",
		Explanation: "Products without offer data are excluded from shopping and price answers.",
		Impact:      9,
	}
}

func recOfferField(field string) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The product's offer is missing %s.", field),
		Solution: fmt.Sprintf("Add %s to the Offer object.", field),
		Impact:   6,
	}
}

func recEnrichmentEmpty(schemaType, prop string) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The %s entity has an empty %s array.", schemaType, prop),
		Solution: fmt.Sprintf("Populate %s with the page's actual content items.", prop),
		Impact:   5,
	}
}

func recMissingEntityID(entityType string) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("The %s entity has no @id.", entityType),
		Solution:    fmt.Sprintf("Give the %s entity a stable @id URL so other entities can reference it.", entityType),
		Explanation: "@id links turn isolated schema blocks into a connected graph engines can traverse.",
		Impact:      3,
	}
}

func recNoCrossLinks() Recommendation {
	return Recommendation{
		Problem:  "No entity references another entity by @id.",
		Solution: "Reference shared entities (publisher, author, website) via @id instead of repeating them inline.",
		Impact:   3,
	}
}

func recNoTitle() Recommendation {
	return Recommendation{
		Problem:  "The page has no title tag.",
		Solution: "Add a descriptive title of 50-60 characters.",
		Impact:   9,
	}
}

func recTitleLength(length int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The title tag is %d characters; the optimal range is 50-60.", length),
		Solution: "Rewrite the title to fit 50-60 characters while keeping the primary topic up front.",
		Impact:   5,
	}
}

func recNoDescription() Recommendation {
	return Recommendation{
		Problem:  "The page has no meta description.",
		Solution: "Add a meta description of roughly 140-160 characters summarizing the page.",
		Impact:   7,
	}
}

func recDescriptionLength(length int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The meta description is %d characters; the optimal range is 140-160.", length),
		Solution: "Rewrite the description to fit 140-160 characters.",
		Impact:   4,
	}
}

func recMissingTechMeta(tag string) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page is missing the %s meta tag.", tag),
		Solution: fmt.Sprintf("Add a %s declaration to the document head.", tag),
		Impact:   4,
	}
}

func recMissingSocialTag(tag string, impact int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page is missing the %s tag.", tag),
		Solution: fmt.Sprintf("Add %s to the document head.", tag),
		Impact:   impact,
	}
}

func recNoImageDimensions() Recommendation {
	return Recommendation{
		Problem:  "The og:image has no declared dimensions.",
		Solution: "Add og:image:width and og:image:height so scrapers can lay out previews without fetching the image.",
		Impact:   2,
	}
}

// --- LLM formatting ---

func recHierarchyViolations(count int) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("The heading hierarchy skips levels in %d place(s).", count),
		Solution:    "Never jump more than one heading level at a time (h2 must follow h1, not h4).",
		Explanation: "Level jumps break the document outline LLMs use to segment content.",
		Impact:      6,
	}
}

func recNoH1() Recommendation {
	return Recommendation{
		Problem:  "The page has no h1 heading.",
		Solution: "Add exactly one h1 stating the page's main topic.",
		Impact:   8,
	}
}

func recMultipleH1(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page has %d h1 headings.", count),
		Solution: "Keep a single h1 and demote the others to h2.",
		Impact:   5,
	}
}

func recFewHeadings(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page has only %d heading(s).", count),
		Solution: "Break the content into sections with at least three descriptive headings.",
		Impact:   4,
	}
}

func recVagueHeadings(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d heading(s) are too short or generic to describe their section.", count),
		Solution: "Replace generic headings like \"Introduction\" with ones that state what the section covers.",
		Impact:   4,
	}
}

func recShallowHeadings(count int) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("%d heading(s) carry too little information (under 20 characters or 3 words).", count),
		Solution:    "Write headings as short statements a reader could understand out of context.",
		Explanation: "Answer engines frequently quote headings verbatim as answer titles.",
		Impact:      3,
	}
}

func recMissingLandmark(tag string) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page has no <%s> landmark element.", tag),
		Solution: fmt.Sprintf("Wrap the corresponding region in a <%s> element.", tag),
		Impact:   5,
	}
}

func recDuplicateMain(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page has %d <main> elements; only one is allowed.", count),
		Solution: "Keep a single <main> wrapping the primary content.",
		Impact:   5,
	}
}

func recAriaCoverage() Recommendation {
	return Recommendation{
		Problem:  "The page makes little or no use of ARIA labelling.",
		Solution: "Add aria-label or aria-labelledby to interactive regions and landmarks.",
		Impact:   4,
	}
}

func recContentFlow(tag string) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page does not use <%s> to structure its content.", tag),
		Solution: fmt.Sprintf("Group self-contained content in <%s> elements.", tag),
		Impact:   3,
	}
}

func recNoInternalLinks() Recommendation {
	return Recommendation{
		Problem:  "The page has no internal links.",
		Solution: "Link to related pages on the same site so crawlers can discover them.",
		Impact:   6,
	}
}

func recGenericLinkText(count int) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("%d link(s) use generic text like \"click here\" or \"read more\".", count),
		Solution:    "Rewrite link text to describe the destination.",
		Explanation: "LLMs infer the target page's topic from the anchor text.",
		Impact:      5,
	}
}

func recFewAuthoritativeLinks() Recommendation {
	return Recommendation{
		Problem:  "External links rarely point to authoritative domains.",
		Solution: "Cite primary sources such as .gov, .edu or recognized industry references.",
		Impact:   3,
	}
}

func recBareLinks(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d link(s) appear without surrounding explanatory text.", count),
		Solution: "Embed links in sentences that explain why the destination matters.",
		Impact:   3,
	}
}

func recInlineStyles(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page carries %d inline style attributes.", count),
		Solution: "Move presentation into stylesheets and keep the markup semantic.",
		Impact:   3,
	}
}

func recDeprecatedTags(tags []string) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The page uses presentational tags: %s.", strings.Join(tags, ", ")),
		Solution: "Replace them with semantic equivalents (strong, em) or CSS.",
		Impact:   3,
	}
}

func recDeepNesting(depth int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("Elements nest %d levels deep.", depth),
		Solution: "Flatten wrapper divs; deep nesting obscures the content structure.",
		Impact:   3,
	}
}

func recNoNav() Recommendation {
	return Recommendation{
		Problem:  "The page has no <nav> element.",
		Solution: "Wrap the primary navigation links in a <nav> landmark.",
		Impact:   4,
	}
}

func recFewNavLinks(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The navigation contains only %d link(s).", count),
		Solution: "Expose at least three navigation links to the site's main areas.",
		Impact:   2,
	}
}

func recNoBreadcrumbNav() Recommendation {
	return Recommendation{
		Problem:  "The page has no breadcrumb markup.",
		Solution: "Add a breadcrumb trail (nav with aria-label=\"Breadcrumb\" or BreadcrumbList schema).",
		Impact:   2,
	}
}

func recGenericCTA(count int) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("%d call-to-action element(s) have generic text without an accessible label.", count),
		Solution:    "Either rewrite the visible text or add an aria-label describing the action's object.",
		Explanation: "\"Buy now\" tells an answer engine nothing about what is being bought.",
		Impact:      5,
	}
}

func recUnnamedInteractive(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d interactive element(s) have no accessible name at all.", count),
		Solution: "Give every link and button visible text, an aria-label or a title.",
		Impact:   7,
	}
}

// --- accessibility ---

func recRenderGap(kind string, pct int) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("Only %d%% of the rendered %s is present in the static HTML.", pct, kind),
		Solution:    "Server-render or statically generate the missing content.",
		Explanation: "Most AI crawlers do not execute JavaScript; client-rendered content is invisible to them.",
		Impact:      9,
	}
}

func recMissingAlt(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d image(s) have no alt text.", count),
		Solution: "Add alt text describing each image's content or mark decorative images with alt=\"\".",
		Impact:   8,
	}
}

func recLongAlt(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d image(s) have alt text longer than 125 characters.", count),
		Solution: "Shorten alt text to a concise description; move detail into surrounding copy.",
		Impact:   4,
	}
}

func recHugeImages(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d image(s) declare dimensions over 2000px.", count),
		Solution: "Serve appropriately sized images with srcset for high-density displays.",
		Impact:   4,
	}
}

func recNoAriaOnControls(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d button(s) or input(s) have no aria-label.", count),
		Solution: "Label every interactive control via aria-label or an associated <label>.",
		Impact:   6,
	}
}

func recNoSkipLink() Recommendation {
	return Recommendation{
		Problem:  "The page has no skip-to-content link.",
		Solution: "Add an in-page anchor as the first focusable element linking to the main content.",
		Impact:   3,
	}
}

func recPositiveTabindex(count int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d element(s) use a positive tabindex.", count),
		Solution: "Remove positive tabindex values and rely on DOM order for focus.",
		Impact:   4,
	}
}

func recPageSpeedUnavailable() Recommendation {
	return Recommendation{
		Problem:  "Page speed data is temporarily unavailable.",
		Solution: "Re-run the audit later to include performance signals.",
		Impact:   1,
	}
}

func recLowPerformance(score int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("The measured performance score is %d/100.", score),
		Solution: "Address the reported performance opportunities, starting with the largest savings.",
		Impact:   6,
	}
}

// --- readability ---

func recNoTextContent() Recommendation {
	return Recommendation{
		Problem:  "No readable text content could be extracted from the page.",
		Solution: "Ensure the page delivers its text in the initial HTML rather than via JavaScript.",
		Impact:   10,
	}
}

func recFleschOutside(score float64) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("The Flesch reading ease score is %.0f; the optimal band is 60-80.", score),
		Solution:    "Shorten sentences and prefer common words to land in plain-English range.",
		Explanation: "Text in the 60-80 band is easiest for both people and language models to parse reliably.",
		Impact:      5,
	}
}

func recPassiveVoice(pct int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("%d%% of sentences use passive voice.", pct),
		Solution: "Rewrite passive constructions so the actor leads the sentence; keep passives under 5%.",
		Impact:   4,
	}
}

func recParagraphLength(pct int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("Only %d%% of paragraphs fall in the 50-150 word range.", pct),
		Solution: "Split long paragraphs and merge fragments into 50-150 word blocks.",
		Impact:   4,
	}
}

func recLowDensity(pct int) Recommendation {
	return Recommendation{
		Problem:     fmt.Sprintf("Text makes up only %d%% of the page's markup.", pct),
		Solution:    "Reduce markup overhead, or move boilerplate out of the content path.",
		Explanation: "Low text density wastes crawler token budgets on markup instead of content.",
		Impact:      4,
	}
}

func recLongSentences(avg float64) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("Sentences average %.1f words.", avg),
		Solution: "Break sentences above 25 words into two.",
		Impact:   4,
	}
}

func recShortSentences(avg float64) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("Sentences average only %.1f words.", avg),
		Solution: "Combine choppy fragments into fuller sentences of 15-25 words.",
		Impact:   2,
	}
}

func recMonotonousRhythm() Recommendation {
	return Recommendation{
		Problem:  "Sentence lengths barely vary.",
		Solution: "Mix short and long sentences to create a natural rhythm.",
		Impact:   2,
	}
}

func recLowVocabulary(pct int) Recommendation {
	return Recommendation{
		Problem:  fmt.Sprintf("Only %d%% of words are unique.", pct),
		Solution: "Vary word choice and trim repeated boilerplate phrases.",
		Impact:   2,
	}
}
