package mcpserver

// TodoFormat describes which lines are carried over from one daily note to
// the next, for LLM consumers writing daily notes.
const TodoFormat = `# Rollover Todo Format

When a daily note named YYYY-MM-DD.md is created in the daily notes folder,
unfinished todos from the most recent earlier daily note are copied into it.

## What counts as an unfinished todo

A run of text matching this pattern, up to the end of its line:

` + "```" + `
\t*- \[ \].*
` + "```" + `

- Zero or more TAB characters, then "- [ ]", then the rest of the line.
- Completed todos ("- [x]") and any other bracket content are not copied.
- Space-indented todos are copied without their leading spaces.
- Order is kept and duplicates are copied as many times as they appear.

## Where they go

- Template heading "none": appended at the end of the new note.
- Otherwise: inserted directly below the first line equal to the heading.
  If the new note has no such line, nothing is inserted.

## Examples

` + "```" + `markdown
## Tasks
- [ ] write report          <- copied
	- [ ] attach figures    <- copied (tab indented)
- [x] send invoice          <- not copied
` + "```" + `
`
