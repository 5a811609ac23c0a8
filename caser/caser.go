// Package caser converts names between the casings used for settings,
// environment variables and file names.
package caser

import (
	"strings"
	"unicode"
)

type Caser string

// Words splits c at spaces, underscores, hyphens and dots, and wherever an
// upper case letter follows a lower case letter or digit.
func (c Caser) Words() []string {
	words := make([]string, 0)
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	prev := rune(0)
	for _, r := range string(c) {
		switch {
		case r == ' ' || r == '_' || r == '-' || r == '.':
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}

func (c Caser) join(sep string, fn func(string) string) string {
	words := c.Words()
	for i, w := range words {
		words[i] = fn(w)
	}
	return strings.Join(words, sep)
}

func (c Caser) SnakeCase() string {
	return c.join("_", strings.ToLower)
}

// ScreamingSnakeCase is the environment variable form: maxLabelSize becomes
// MAX_LABEL_SIZE.
func (c Caser) ScreamingSnakeCase() string {
	return c.join("_", strings.ToUpper)
}

func (c Caser) KebabCase() string {
	return c.join("-", strings.ToLower)
}

func (c Caser) PascalCase() string {
	return c.join("", capitalize)
}

func (c Caser) CamelCase() string {
	s := c.PascalCase()
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func New(s string) Caser {
	return Caser(s)
}
