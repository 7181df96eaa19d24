package entity

import (
	"regexp"
	"strings"
)

var reTemplateSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeTemplateName lowercases the name and collapses runs of
// whitespace into single hyphens.
func NormalizeTemplateName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(name), "-")
}

// ValidTemplateName reports whether the (normalized) name is a slug.
func ValidTemplateName(name string) bool {
	return reTemplateSlug.MatchString(name)
}
