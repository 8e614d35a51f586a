package domain

import "github.com/samber/lo"

// Language is one entry of the supported-language catalog.
type Language struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LanguageCatalog maps language codes to display labels. It is fetched once
// at session start and read-only thereafter, so the order of the response is
// preserved.
type LanguageCatalog []Language

// Label returns the display name for a code.
func (c LanguageCatalog) Label(code string) (string, bool) {
	l, ok := lo.Find(c, func(l Language) bool { return l.Value == code })
	return l.Label, ok
}

// Contains reports whether a code is part of the catalog.
func (c LanguageCatalog) Contains(code string) bool {
	return lo.ContainsBy(c, func(l Language) bool { return l.Value == code })
}

// Codes lists the catalog codes in catalog order.
func (c LanguageCatalog) Codes() []string {
	return lo.Map(c, func(l Language, _ int) string { return l.Value })
}
