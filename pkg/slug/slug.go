// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns arbitrary Unicode text into ASCII identifiers.
//
// # Usage
//
// [From] builds lowercase URL slugs ("kraken-api"). [Filename] builds
// download names that keep case, digits and underscores
// ("Steuerbericht_2023-01-01_2023-12-31.pdf").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
	// unsafeFilename matches runs of characters a download name must not carry.
	unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// germanFold spells out the letters NFD cannot decompose into ASCII.
var germanFold = strings.NewReplacer("ß", "ss", "Ä", "Ae", "Ö", "Oe", "Ü", "Ue", "ä", "ae", "ö", "oe", "ü", "ue")

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and removes combining marks (é → e).
// 2. Converts to lowercase.
// 3. Replaces non-alphanumeric characters with hyphens.
// 4. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	result := fold(s)
	result = strings.ToLower(result)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Filename converts s into a safe ASCII file name. Case, dots, hyphens and
// underscores survive; every other run of characters becomes one underscore.
// An empty result falls back to "download".
func Filename(s string) string {
	result := fold(germanFold.Replace(s))
	result = unsafeFilename.ReplaceAllString(result, "_")
	result = strings.Trim(result, "._-")
	if result == "" {
		return "download"
	}
	return result
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
