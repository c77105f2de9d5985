// Package i18n defines the locales the archive ships translations for.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	english = language.AmericanEnglish
	russian = language.Russian

	supported = []language.Tag{english, russian}
	matcher   = language.NewMatcher(supported)
)

// SupportedTags returns the locales with translations, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the fallback locale.
func DefaultTag() language.Tag {
	return english
}

// ParseTag resolves a user-provided value to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return canonical(matched), true
}

// MatchTags picks the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return english
	}
	matched, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return english
	}
	return canonical(matched)
}

// LocaleName returns the catalog directory name for tag.
func LocaleName(tag language.Tag) string {
	base, _ := canonical(tag).Base()
	if base.String() == "ru" {
		return "ru"
	}
	return "en-US"
}

// canonical strips the -u-rg extensions the matcher adds to results.
func canonical(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	for _, candidate := range supported {
		if candidateBase, _ := candidate.Base(); candidateBase == base {
			return candidate
		}
	}
	return english
}
