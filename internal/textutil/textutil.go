// Package textutil provides the token handling shared by corpus readers.
package textutil

import "strings"

// Tokenize splits a line on any run of Unicode whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// Normalize lowercases a token.
func Normalize(token string) string {
	return strings.ToLower(token)
}

// NormalizeAll lowercases every token in place and returns the slice.
func NormalizeAll(tokens []string) []string {
	for i, tok := range tokens {
		tokens[i] = Normalize(tok)
	}
	return tokens
}
