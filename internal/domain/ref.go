package domain

import (
	"regexp"
	"strings"
)

// Ref addresses either a core activity or a custom activity by slug.
type Ref struct {
	Core CoreKey
	Slug string
}

func CoreRef(k CoreKey) Ref     { return Ref{Core: k} }
func CustomRef(slug string) Ref { return Ref{Slug: slug} }

func (r Ref) IsCore() bool { return r.Core != "" }

func (r Ref) String() string {
	if r.IsCore() {
		return string(r.Core)
	}
	return "custom:" + r.Slug
}

// ParseRef accepts a core key ("gym") or a custom slug, optionally prefixed
// with "custom:".
func ParseRef(s string) Ref {
	if slug, ok := strings.CutPrefix(s, "custom:"); ok {
		return CustomRef(slug)
	}
	if k := CoreKey(s); k.Valid() {
		return CoreRef(k)
	}
	return CustomRef(s)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, collapses runs of other characters into a single
// hyphen and trims leading and trailing hyphens.
func Slugify(name string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
