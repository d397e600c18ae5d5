package snippets

import (
	"strings"
	"testing"
)

func TestFormatMarkdown(t *testing.T) {
	catalog, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}

	got := catalog.FormatMarkdown()
	for _, want := range []string{
		"---\nschema: nodejs-snippets.cheatsheet/v1\n",
		"sources: [built-in=",
		"# Express/Node.js snippets",
		"## Express Server",
		"**Prefix:** `express-server`",
		"```javascript\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown should contain %q", want)
		}
	}
	if strings.Contains(got, "_Source: built-in_") {
		t.Error("built-in snippets should not carry a source line")
	}
}

func TestFormatMarkdown_ProjectSnippet(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "snippets:\n"+
		"  - name: Template Literal\n"+
		"    prefix: tpl\n"+
		"    body: \"const msg = `hello ${1:name}`;\"\n")

	catalog, err := Load(LoadOptions{ProjectDir: dir})
	if err != nil {
		t.Fatal(err)
	}

	got := catalog.FormatMarkdown()
	if !strings.Contains(got, "_Source: project_") {
		t.Error("override snippets should name their source")
	}
	if !strings.Contains(got, "sources: [project=1, built-in=") {
		t.Errorf("frontmatter sources wrong:\n%s", got[:200])
	}
	if !strings.Contains(got, "```javascript\nconst msg = `hello ${1:name}`;\n```\n") {
		t.Error("single backticks in the body should keep a three-backtick fence")
	}
}

func TestLongestBacktickRun(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"no ticks", 0},
		{"`a` ``b``", 2},
		{"````", 4},
	}
	for _, tt := range tests {
		if got := longestBacktickRun(tt.in); got != tt.want {
			t.Errorf("longestBacktickRun(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
