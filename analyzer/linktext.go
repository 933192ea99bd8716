package analyzer

import "strings"

// genericLinkText is the consolidated dictionary of non-descriptive
// link and call-to-action phrases. Both the link-quality and the
// CTA-clarity scoring read from this one list.
var genericLinkText = map[string]bool{
	"click here":     true,
	"click":          true,
	"here":           true,
	"read more":      true,
	"learn more":     true,
	"more":           true,
	"more info":      true,
	"see more":       true,
	"view more":      true,
	"show more":      true,
	"link":           true,
	"this":           true,
	"this page":      true,
	"this link":      true,
	"page":           true,
	"website":        true,
	"continue":       true,
	"continue reading": true,
	"next":           true,
	"previous":       true,
	"go":             true,
	"go here":        true,
	"go now":         true,
	"start":          true,
	"start now":      true,
	"get started":    true,
	"begin":          true,
	"submit":         true,
	"send":           true,
	"ok":             true,
	"yes":            true,
	"no":             true,
	"buy":            true,
	"buy now":        true,
	"shop now":       true,
	"order now":      true,
	"add to cart":    true,
	"sign up":        true,
	"sign up now":    true,
	"sign in":        true,
	"log in":         true,
	"login":          true,
	"register":       true,
	"join":           true,
	"join now":       true,
	"subscribe":      true,
	"subscribe now":  true,
	"download":       true,
	"download now":   true,
	"try it":         true,
	"try now":        true,
	"try it free":    true,
	"free trial":     true,
	"contact us":     true,
	"book now":       true,
	"apply now":      true,
	"details":        true,
	"info":           true,
	"check it out":   true,
	"find out more":  true,
	"tap here":       true,
}

// genericHeadingText flags headings that name nothing specific.
var genericHeadingText = map[string]bool{
	"introduction": true,
	"intro":        true,
	"content":      true,
	"contents":     true,
	"overview":     true,
	"details":      true,
	"information":  true,
	"more":         true,
	"section":      true,
	"heading":      true,
	"title":        true,
	"untitled":     true,
	"misc":         true,
	"other":        true,
	"conclusion":   true,
	"summary":      true,
}

// authoritativeDomains complements the .edu/.gov/.org suffix check for
// external link quality.
var authoritativeDomains = map[string]bool{
	"github.com":        true,
	"stackoverflow.com": true,
	"wikipedia.org":     true,
	"nytimes.com":       true,
	"reuters.com":       true,
	"apnews.com":        true,
	"bbc.com":           true,
	"bbc.co.uk":         true,
	"nature.com":        true,
	"sciencedirect.com": true,
	"ieee.org":          true,
	"acm.org":           true,
	"linkedin.com":      true,
	"medium.com":        true,
}

func isGenericLinkText(text string) bool {
	return genericLinkText[normalizePhrase(text)]
}

func isGenericHeading(text string) bool {
	return genericHeadingText[normalizePhrase(text)]
}

func normalizePhrase(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	return strings.Trim(t, ".!?:;…→> ")
}

// isAuthoritativeHost checks the hostname against the trusted suffixes
// and the fixed domain list.
func isAuthoritativeHost(host string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	for _, suffix := range []string{".edu", ".gov", ".org"} {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	if authoritativeDomains[host] {
		return true
	}
	// Match registered domain for subdomain hosts like docs.github.com.
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		return authoritativeDomains[strings.Join(parts[len(parts)-2:], ".")]
	}
	return false
}
