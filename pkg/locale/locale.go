// Package locale resolves the locale prefix of storefront routes.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

type Resolver struct {
	supported []language.Tag
	byTag     map[string]string
	matcher   language.Matcher
	fallback  string
}

// NewResolver builds a resolver over the supported locales. The default
// locale must be one of them.
func NewResolver(supported []string, def string) (*Resolver, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("locale: no supported locales")
	}

	r := &Resolver{byTag: make(map[string]string, len(supported))}
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("locale: parse %q: %w", s, err)
		}
		r.supported = append(r.supported, tag)
		r.byTag[tag.String()] = tag.String()
	}

	defTag, err := language.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("locale: parse default %q: %w", def, err)
	}
	if _, ok := r.byTag[defTag.String()]; !ok {
		return nil, fmt.Errorf("locale: default %q is not supported", def)
	}
	r.fallback = defTag.String()

	// The matcher prefers its first tag when nothing matches.
	ordered := []language.Tag{defTag}
	for _, t := range r.supported {
		if t != defTag {
			ordered = append(ordered, t)
		}
	}
	r.supported = ordered
	r.matcher = language.NewMatcher(ordered)
	return r, nil
}

// Resolve canonicalises a route prefix such as "EN" or "pl". It reports false
// when the prefix is malformed or not one of the supported locales.
func (r *Resolver) Resolve(prefix string) (string, bool) {
	tag, err := language.Parse(prefix)
	if err != nil {
		return "", false
	}
	loc, ok := r.byTag[tag.String()]
	return loc, ok
}

// Negotiate picks the best supported locale for an Accept-Language header.
func (r *Resolver) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.fallback
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return r.fallback
	}
	return r.supported[idx].String()
}

func (r *Resolver) Default() string { return r.fallback }

func (r *Resolver) Supported() []string {
	out := make([]string, 0, len(r.supported))
	for _, t := range r.supported {
		out = append(out, t.String())
	}
	return out
}
