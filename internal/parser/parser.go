// Package parser extracts unfinished todos and headings from Markdown text.
// Matching is purely line-textual; no Markdown structure is interpreted.
package parser

import "regexp"

var (
	// Tab indentation only; a completed "- [x]" never matches.
	todoRe    = regexp.MustCompile(`\t*- \[ \].*`)
	headingRe = regexp.MustCompile(`#+ .*`)
)

// ExtractTodos returns every unfinished todo line in text, in order of
// appearance. Duplicates are kept.
func ExtractTodos(text string) []string {
	matches := todoRe.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// Headings returns every heading line in text, in order of appearance.
func Headings(text string) []string {
	matches := headingRe.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
