package analyzer

import "strings"

// aiBots are the AI crawler user agents checked for robots.txt access.
var aiBots = []string{
	"GPTBot",
	"Google-Extended",
	"ChatGPT-User",
	"CCBot",
	"anthropic-ai",
	"Claude-Web",
	"PerplexityBot",
}

// botRules holds the allow/disallow paths declared for one user agent.
type botRules struct {
	Allows    []string
	Disallows []string
}

// parseRobotsTxt parses robots.txt into per-user-agent rule sets. Keys
// are lowercased user agent names; "*" is the wildcard group. Directive
// names are case-insensitive and "#" starts a comment.
func parseRobotsTxt(content string) map[string]*botRules {
	rules := make(map[string]*botRules)
	var current []string

	for _, line := range strings.Split(content, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			agent := strings.ToLower(value)
			if agent == "" {
				continue
			}
			if _, ok := rules[agent]; !ok {
				rules[agent] = &botRules{}
			}
			// Consecutive User-agent lines share the directives that follow;
			// a User-agent after a directive starts a new group.
			if len(current) > 0 && groupHasDirectives(rules, current) {
				current = current[:0]
			}
			current = append(current, agent)
		case "allow":
			for _, agent := range current {
				rules[agent].Allows = append(rules[agent].Allows, value)
			}
		case "disallow":
			for _, agent := range current {
				rules[agent].Disallows = append(rules[agent].Disallows, value)
			}
		}
	}
	return rules
}

func groupHasDirectives(rules map[string]*botRules, agents []string) bool {
	for _, agent := range agents {
		if r := rules[agent]; r != nil && (len(r.Allows) > 0 || len(r.Disallows) > 0) {
			return true
		}
	}
	return false
}

// isBotAllowed reports whether the bot may crawl the site root. The
// bot-specific rule block applies when present, else the wildcard block,
// else access defaults to allowed. A bot is blocked only by a disallow
// of exactly "/" in its applicable block.
func isBotAllowed(rules map[string]*botRules, bot string) bool {
	block, ok := rules[strings.ToLower(bot)]
	if !ok {
		block, ok = rules["*"]
	}
	if !ok || block == nil {
		return true
	}
	for _, d := range block.Disallows {
		if d == "/" {
			return false
		}
	}
	return true
}
