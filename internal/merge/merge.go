// Package merge inserts carried-over todo lines into a note's text.
package merge

import "strings"

// None is the heading value that selects append mode.
const None = "none"

// Merge returns target with todos added. Existing lines are never removed
// or reordered.
//
// With heading set to None the todos are appended, joined by newlines, after
// a line break if target does not already end with one. Otherwise the todos
// are inserted right after the first literal occurrence of heading followed
// by a newline. The match is a plain substring search, so "## Tasks" also
// matches the tail of "### Tasks". If there is no occurrence target is
// returned unchanged.
//
// Merge is not idempotent: applying it twice inserts the todos twice.
func Merge(target string, todos []string, heading string) string {
	if len(todos) == 0 {
		return target
	}
	if heading == None || heading == "" {
		return appendTodos(target, todos)
	}
	return insertUnderHeading(target, todos, heading)
}

func appendTodos(target string, todos []string) string {
	var b strings.Builder
	b.WriteString(target)
	if target != "" && !strings.HasSuffix(target, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(strings.Join(todos, "\n"))
	return b.String()
}

func insertUnderHeading(target string, todos []string, heading string) string {
	anchor := heading + "\n"
	i := strings.Index(target, anchor)
	if i < 0 {
		return target
	}
	at := i + len(anchor)

	var b strings.Builder
	b.Grow(len(target) + len(todos)*16)
	b.WriteString(target[:at])
	for _, todo := range todos {
		b.WriteString(todo)
		b.WriteByte('\n')
	}
	b.WriteString(target[at:])
	return b.String()
}
