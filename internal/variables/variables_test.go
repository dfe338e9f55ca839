package variables_test

import (
	"strconv"
	"strings"
	"testing"

	"hxls/internal/variables"
)

func testContext() *variables.Context {
	return &variables.Context{
		FilePath:     "/home/user/project/notes/todo.md",
		Workspace:    "/home/user/project",
		Line:         4,
		Column:       8,
		LineText:     "- [ ] write tests",
		CurrentWord:  "tests",
		SelectedText: "write tests",
		Clipboard:    "pasted",
	}
}

func TestResolve(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name string
		want string
	}{
		{"TM_SELECTED_TEXT", "write tests"},
		{"TM_CURRENT_LINE", "- [ ] write tests"},
		{"TM_CURRENT_WORD", "tests"},
		{"TM_LINE_INDEX", "4"},
		{"TM_LINE_NUMBER", "5"},
		{"TM_FILENAME", "todo.md"},
		{"TM_FILENAME_BASE", "todo"},
		{"TM_DIRECTORY", "/home/user/project/notes"},
		{"TM_FILEPATH", "/home/user/project/notes/todo.md"},
		{"RELATIVE_FILEPATH", "notes/todo.md"},
		{"CLIPBOARD", "pasted"},
		{"WORKSPACE_NAME", "project"},
		{"WORKSPACE_FOLDER", "/home/user/project"},
		{"CURSOR_INDEX", "8"},
		{"CURSOR_NUMBER", "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ctx.Resolve(tt.name)
			if !ok {
				t.Fatalf("expected %s to resolve", tt.name)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	ctx := testContext()
	if _, ok := ctx.Resolve("NOT_A_VARIABLE"); ok {
		t.Fatal("expected unknown name to not resolve")
	}
}

func TestResolveRandom(t *testing.T) {
	ctx := testContext()

	random, _ := ctx.Resolve("RANDOM")
	if len(random) != 6 {
		t.Fatalf("expected 6 digits, got %q", random)
	}
	if _, err := strconv.Atoi(random); err != nil {
		t.Fatalf("expected digits, got %q", random)
	}

	hex, _ := ctx.Resolve("RANDOM_HEX")
	if len(hex) != 6 {
		t.Fatalf("expected 6 hex digits, got %q", hex)
	}
	if _, err := strconv.ParseUint(hex, 16, 64); err != nil {
		t.Fatalf("expected hex digits, got %q", hex)
	}

	id, _ := ctx.Resolve("UUID")
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Fatalf("expected a UUID, got %q", id)
	}
}

func TestSubstitute(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tokens", "plain text", "plain text"},
		{"bare reference", "file: $TM_FILENAME", "file: todo.md"},
		{"braced reference", "file: ${TM_FILENAME}", "file: todo.md"},
		{"case insensitive", "file: ${tm_filename}", "file: todo.md"},
		{"longest wins", "$TM_FILENAME_BASE", "todo"},
		{"adjacent suffix", "$TM_FILENAME.bak", "todo.md.bak"},
		{"unknown verbatim", "cost: $PRICE", "cost: $PRICE"},
		{"tabstop verbatim", "echo $1 ${2:x}", "echo $1 ${2:x}"},
		{"trailing dollar", "end$", "end$"},
		{"two references", "$WORKSPACE_NAME/$TM_FILENAME", "project/todo.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ctx.Substitute(tt.in)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSubstituteIdempotentWithoutTokens(t *testing.T) {
	ctx := testContext()
	in := "grep -n 'TODO' *.md | wc -l"
	if got := ctx.Substitute(in); got != in {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestEnvCoversAllNames(t *testing.T) {
	env := testContext().Env()
	if len(env) != len(variables.Names) {
		t.Fatalf("expected %d entries, got %d", len(variables.Names), len(env))
	}
	for i, name := range variables.Names {
		if !strings.HasPrefix(env[i], name+"=") {
			t.Fatalf("entry %d: expected prefix %q, got %q", i, name+"=", env[i])
		}
	}
}
