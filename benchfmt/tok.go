// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"unicode"
	"unicode/utf8"
)

// A tok is a single token of benchmark report text.
type tok struct {
	// Kind is 'w' for a word or the punctuation character itself.
	// Punctuation outside ASCII has Kind '?' and is only
	// distinguishable by Tok.
	Kind byte
	Off  int    // Byte offset of the beginning of this token
	Tok  string // Literal token contents
	// Space is set if white space separates this token from the
	// previous one (or from the beginning of the text).
	Space bool
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize splits text into words and punctuation. Words are maximal
// runs of letters, digits and underscores. Every other non-space rune
// is a token of its own. Invalid UTF-8 bytes are dropped, but still
// separate the tokens around them.
func tokenize(text []byte) []tok {
	var toks []tok
	space := true
	for i := 0; i < len(text); {
		r, n := rune(text[i]), 1
		if r >= utf8.RuneSelf {
			r, n = utf8.DecodeRune(text[i:])
		}
		switch {
		case unicode.IsSpace(r):
			space = true
			i += n
			continue
		case r == utf8.RuneError && n == 1:
			space = true
			i += n
			continue
		case isWordRune(r):
			end := i + n
			for end < len(text) {
				r, n := rune(text[end]), 1
				if r >= utf8.RuneSelf {
					r, n = utf8.DecodeRune(text[end:])
				}
				if !isWordRune(r) || (r == utf8.RuneError && n == 1) {
					break
				}
				end += n
			}
			toks = append(toks, tok{'w', i, string(text[i:end]), space})
			i = end
		default:
			kind := byte('?')
			if r < utf8.RuneSelf {
				kind = byte(r)
			}
			toks = append(toks, tok{kind, i, string(text[i : i+n]), space})
			i += n
		}
		space = false
	}
	return toks
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
