package enricher

import (
	"regexp"
	"strings"
	"unicode"
)

// Lead-in phrases the model tends to produce despite instructions. They
// carry no information in a file listing, so they get stripped.
var (
	reLeadSubject = regexp.MustCompile(`(?i)^\s*this\s+(?:file|script|module|class|service|program|document|config(?:uration)?(?:\s+file)?|shell\s+script)\b[,:;\-\s]*`)
	reLeadVerb    = regexp.MustCompile(`(?i)^\s*(?:is|does|provides|contains)\b[,:;\-\s]*`)
)

// SanitizeDescription normalizes a model-produced description: trims
// quoting, strips boilerplate lead-ins, and capitalizes the first
// letter of what remains.
func SanitizeDescription(input string) string {
	s := strings.TrimSpace(input)
	s = strings.Trim(s, `"'`)
	s = reLeadSubject.ReplaceAllString(s, "")
	s = reLeadVerb.ReplaceAllString(s, "")
	return capitalizeFirstAlpha(s)
}

func capitalizeFirstAlpha(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capitalized := false
	for _, r := range s {
		if !capitalized && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			capitalized = true
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
