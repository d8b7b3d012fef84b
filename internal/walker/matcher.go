package walker

import (
	"path"
	"strings"
)

// defaultRules are pruned on every walk and can be extended per run
var defaultRules = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
	"__pycache__",
}

// Matcher applies glob-style ignore rules to relative paths. A bare name
// matches a file or directory segment anywhere in the tree; patterns with a
// slash match against the full relative path.
type Matcher struct {
	rules []string
}

// NewMatcher builds a matcher from user rules layered over the defaults
func NewMatcher(userRules []string) *Matcher {
	rules := make([]string, 0, len(defaultRules)+len(userRules))
	rules = append(rules, defaultRules...)
	for _, r := range userRules {
		r = strings.TrimSpace(normalize(r))
		if r != "" {
			rules = append(rules, r)
		}
	}
	return &Matcher{rules: rules}
}

// Ignored reports whether the relative path matches any rule
func (m *Matcher) Ignored(relPath string, isDir bool) bool {
	relPath = normalize(relPath)
	segments := strings.Split(relPath, "/")

	for _, rule := range m.rules {
		if strings.Contains(rule, "/") {
			if ok, _ := path.Match(rule, relPath); ok {
				return true
			}
			continue
		}
		for _, seg := range segments {
			if ok, _ := path.Match(rule, seg); ok {
				return true
			}
		}
	}
	return false
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return strings.Trim(p, "/")
}
