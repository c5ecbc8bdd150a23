package merge

import (
	"strings"
	"testing"
)

func TestMerge_AppendOntoEmpty(t *testing.T) {
	got := Merge("", []string{"- [ ] buy milk"}, None)
	if got != "- [ ] buy milk" {
		t.Errorf("merged = %q", got)
	}
}

func TestMerge_AppendAfterTrailingNewline(t *testing.T) {
	got := Merge("# Today\n", []string{"- [ ] a", "- [ ] b"}, None)
	if got != "# Today\n- [ ] a\n- [ ] b" {
		t.Errorf("merged = %q", got)
	}
}

func TestMerge_AppendInsertsLineBreak(t *testing.T) {
	got := Merge("# Today", []string{"- [ ] a"}, None)
	if got != "# Today\n- [ ] a" {
		t.Errorf("merged = %q", got)
	}
}

func TestMerge_AppendTwiceDuplicates(t *testing.T) {
	todos := []string{"- [ ] a"}
	once := Merge("", todos, None)
	twice := Merge(once, todos, None)
	if strings.Count(twice, "- [ ] a") != 2 {
		t.Errorf("merged = %q, want the todo twice", twice)
	}
}

func TestMerge_UnderHeading(t *testing.T) {
	got := Merge("## Tasks\nold content\n", []string{"- [ ] buy milk"}, "## Tasks")
	want := "## Tasks\n- [ ] buy milk\nold content\n"
	if got != want {
		t.Errorf("merged = %q, want %q", got, want)
	}
}

func TestMerge_UnderHeadingKeepsOtherLines(t *testing.T) {
	target := "# 2024-01-02\n\n## Tasks\n- [ ] existing\n\n## Notes\nsomething\n"
	got := Merge(target, []string{"- [ ] a", "- [ ] b"}, "## Tasks")
	want := "# 2024-01-02\n\n## Tasks\n- [ ] a\n- [ ] b\n- [ ] existing\n\n## Notes\nsomething\n"
	if got != want {
		t.Errorf("merged = %q, want %q", got, want)
	}
}

func TestMerge_UnderFirstOccurrenceOnly(t *testing.T) {
	got := Merge("## Tasks\n## Tasks\n", []string{"- [ ] a"}, "## Tasks")
	if got != "## Tasks\n- [ ] a\n## Tasks\n" {
		t.Errorf("merged = %q", got)
	}
}

func TestMerge_HeadingMatchesLiteralOccurrence(t *testing.T) {
	got := Merge("### Tasks\nx\n## Tasks\ny\n", []string{"- [ ] a"}, "## Tasks")
	if got != "### Tasks\n- [ ] a\nx\n## Tasks\ny\n" {
		t.Errorf("merged = %q", got)
	}
}

func TestMerge_HeadingMissing(t *testing.T) {
	target := "## Tasks\nold content\n"
	if got := Merge(target, []string{"- [ ] a"}, "## Missing"); got != target {
		t.Errorf("merged = %q, want unchanged", got)
	}
}

func TestMerge_HeadingWithoutNewline(t *testing.T) {
	target := "intro\n## Tasks"
	if got := Merge(target, []string{"- [ ] a"}, "## Tasks"); got != target {
		t.Errorf("merged = %q, want unchanged", got)
	}
}

func TestMerge_NoTodos(t *testing.T) {
	for _, heading := range []string{None, "## Tasks"} {
		if got := Merge("## Tasks\nx", nil, heading); got != "## Tasks\nx" {
			t.Errorf("heading %q: merged = %q", heading, got)
		}
	}
}
