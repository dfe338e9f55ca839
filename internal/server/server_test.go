package server_test

import (
	"testing"

	"hxls/internal/server"
)

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/user/notes/todo.md", "/home/user/notes/todo.md"},
		{"file:///path%20with%20spaces/a.md", "/path with spaces/a.md"},
		{"/already/a/path", "/already/a/path"},
	}
	for _, tt := range tests {
		got, err := server.URIToPath(tt.uri)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.uri, tt.want, got)
		}
	}
}
