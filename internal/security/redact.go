package security

import "regexp"

// Redacted replaces every secret Redact finds
const Redacted = "***REDACTED***"

// secretPattern masks group 1 of a match, or the whole match when the
// pattern has no group.
type secretPattern struct {
	name    string
	pattern *regexp.Regexp
}

var secretPatterns = []secretPattern{
	{
		name:    "jwt",
		pattern: regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`),
	},
	{
		name:    "bearer",
		pattern: regexp.MustCompile(`(?i)bearer\s+([A-Za-z0-9._~+/=-]+)`),
	},
	{
		name:    "json_field",
		pattern: regexp.MustCompile(`(?i)"(?:access|refresh|access_token|refresh_token|password|token)"\s*:\s*"([^"]*)"`),
	},
}

// Redact masks bearer tokens, JWTs and credential fields in text bound
// for logs or error messages.
func Redact(text string) string {
	for _, p := range secretPatterns {
		text = p.pattern.ReplaceAllStringFunc(text, func(match string) string {
			sub := p.pattern.FindStringSubmatchIndex(match)
			if len(sub) < 4 || sub[2] < 0 {
				return Redacted
			}
			return match[:sub[2]] + Redacted + match[sub[3]:]
		})
	}
	return text
}

// ContainsSecret reports whether Redact would change text
func ContainsSecret(text string) bool {
	for _, p := range secretPatterns {
		if p.pattern.MatchString(text) {
			return true
		}
	}
	return false
}
