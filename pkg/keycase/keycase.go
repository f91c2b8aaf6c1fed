// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package keycase converts delimiter separated configuration keys (max_width)
// into the camelCase form (maxWidth) expected by component props.
package keycase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultDelimiter = "_"

type Normalizer func(key string) string

// ToCamelCase normalizes a snake_case key. Empty segments (leading, trailing or
// doubled delimiters) are zero-length words and contribute nothing, so
// "_foo" -> "Foo", "foo__bar" -> "fooBar" and "foo_" -> "foo".
func ToCamelCase(key string) string {
	return toCamel(key, DefaultDelimiter)
}

func WithDelimiter(delim string) Normalizer {
	if delim == "" {
		return Identity
	}
	return func(key string) string {
		return toCamel(key, delim)
	}
}

func Identity(key string) string {
	return key
}

func IsCamel(key string) bool {
	return !strings.Contains(key, DefaultDelimiter)
}

func toCamel(key string, delim string) string {
	if !strings.Contains(key, delim) {
		return key
	}
	words := strings.Split(key, delim)
	var sb strings.Builder
	sb.Grow(len(key))
	sb.WriteString(words[0])
	for _, word := range words[1:] {
		sb.WriteString(upperFirst(word))
	}
	return sb.String()
}

// only the first rune changes, the rest of the word is kept as-is
func upperFirst(word string) string {
	if word == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError && size <= 1 {
		return word
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return word
	}
	return string(upper) + word[size:]
}

// css vendor prefixes as written in camelCase style props
var vendorPrefixes = []string{"Webkit", "Moz", "ms"}

func isVendorPrefixed(key string) bool {
	for _, prefix := range vendorPrefixes {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(key[len(prefix):])
		if unicode.IsUpper(next) {
			return true
		}
	}
	return false
}

// ToKebabCase is the reverse direction used for css property names:
// "marginTop" -> "margin-top".  vendor prefixes get a leading dash
// ("WebkitTransition" -> "-webkit-transition", "msTransition" -> "-ms-transition").
func ToKebabCase(key string) string {
	var sb strings.Builder
	sb.Grow(len(key) + 4)
	prefixed := isVendorPrefixed(key)
	if prefixed && strings.HasPrefix(key, "ms") {
		sb.WriteByte('-')
	}
	for idx, r := range key {
		if unicode.IsUpper(r) {
			if idx > 0 || prefixed {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
