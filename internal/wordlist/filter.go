// Package wordlist provides vocabulary filtering and word list loading.
package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

const rightSingleQuote = '’'

// IsWord reports whether token counts as a vocabulary word.
//
// Hyphenated tokens are accepted only when every segment is purely alphabetic,
// so an empty segment ("co--op", "-ish") rejects the token. Other tokens are
// accepted when alphabetic, or when every character belongs to the allow-list
// of ASCII letters, '.', '\'', '’' and '-'. The empty string passes the
// allow-list check and is therefore a word.
func IsWord(token string) bool {
	if strings.Contains(token, "-") {
		for _, segment := range strings.Split(token, "-") {
			if !isAlpha(segment) {
				return false
			}
		}
		return true
	}
	if isAlpha(token) {
		return true
	}
	return isAllowed(token)
}

// Filter keeps the words accepted by keep, preserving order.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if keep(word) {
			out = append(out, word)
		}
	}
	return out
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if !isASCIILetter(word[i]) {
			return false
		}
	}
	return true
}

func isAllowed(word string) bool {
	for _, r := range word {
		switch {
		case r < 0x80 && isASCIILetter(byte(r)):
		case r == '.', r == '\'', r == '-', r == rightSingleQuote:
		default:
			return false
		}
	}
	return true
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
