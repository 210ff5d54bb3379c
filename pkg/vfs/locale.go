package vfs

import (
	"os"
	"strings"
)

// DefaultLocales derives the ordered locale preference list from the
// environment, the way POSIX message catalogs do: LANGUAGE (a colon
// separated list) wins, then LC_ALL, LC_MESSAGES and LANG. Each entry is
// exploded into progressively less specific variants, so "de_DE.UTF-8"
// yields de_DE.UTF-8, de_DE, de. The list always ends with the "C" locale.
func DefaultLocales() []string {
	var raw []string
	if language := os.Getenv("LANGUAGE"); language != "" {
		raw = strings.Split(language, ":")
	} else {
		for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
			if v := os.Getenv(env); v != "" {
				raw = []string{v}
				break
			}
		}
	}

	var locales []string
	seen := make(map[string]bool)
	add := func(locale string) {
		if locale != "" && !seen[locale] {
			seen[locale] = true
			locales = append(locales, locale)
		}
	}

	for _, locale := range raw {
		for _, variant := range explodeLocale(locale) {
			add(variant)
		}
	}
	add("C")

	return locales
}

// explodeLocale expands a locale identifier of the form
// lang_COUNTRY.codeset@modifier into its fallback chain.
func explodeLocale(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" || locale == "C" || locale == "POSIX" {
		return nil
	}

	variants := []string{locale}

	// Strip @modifier, then .codeset, then _COUNTRY.
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
		variants = append(variants, locale)
	}
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
		variants = append(variants, locale)
	}
	if i := strings.IndexByte(locale, '_'); i >= 0 {
		locale = locale[:i]
		variants = append(variants, locale)
	}

	return variants
}
