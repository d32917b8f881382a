package toolserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func newTestServer(t *testing.T, files map[string][]byte) *Server {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "u1", "processed", "links")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("mkdir root: %v", err)
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	s, err := New(&Config{BaseDir: base, UserID: "u1", Category: "links"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestReadFile(t *testing.T) {
	s := newTestServer(t, map[string][]byte{
		"notes.txt":      []byte("saved kubernetes setup\n"),
		"sub/deep.txt":   []byte("nested\n"),
		"image.bin":      {0xff, 0xfe, 0x00, 0x80},
		"subdir/ignored": []byte("x"),
	})

	tests := []struct {
		name     string
		args     map[string]any
		wantErr  bool
		wantText string
	}{
		{
			name:     "reads a file",
			args:     map[string]any{"file_path": "notes.txt"},
			wantText: "saved kubernetes setup\n",
		},
		{
			name:     "reads a nested file",
			args:     map[string]any{"file_path": "sub/deep.txt"},
			wantText: "nested\n",
		},
		{
			name:     "missing file",
			args:     map[string]any{"file_path": "nope.txt"},
			wantErr:  true,
			wantText: "ERROR: NOT_FOUND:",
		},
		{
			name:     "directory is not a file",
			args:     map[string]any{"file_path": "sub"},
			wantErr:  true,
			wantText: "ERROR: NOT_A_FILE:",
		},
		{
			name:     "binary file",
			args:     map[string]any{"file_path": "image.bin"},
			wantErr:  true,
			wantText: "ERROR: NOT_TEXT:",
		},
		{
			name:     "path traversal",
			args:     map[string]any{"file_path": "../../../etc/passwd"},
			wantErr:  true,
			wantText: "ERROR: ACCESS_DENIED:",
		},
		{
			name:     "absolute path",
			args:     map[string]any{"file_path": "/etc/passwd"},
			wantErr:  true,
			wantText: "ERROR: ACCESS_DENIED:",
		},
		{
			name:     "missing argument",
			args:     map[string]any{},
			wantErr:  true,
			wantText: "ERROR: INVALID_PATTERN:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleReadFile(context.Background(), callReq(tt.args))
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if result.IsError != tt.wantErr {
				t.Errorf("IsError = %v, want %v", result.IsError, tt.wantErr)
			}
			got := textOf(t, result)
			if tt.wantErr {
				if !strings.HasPrefix(got, tt.wantText) {
					t.Errorf("text = %q, want prefix %q", got, tt.wantText)
				}
			} else if got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestListFile(t *testing.T) {
	s := newTestServer(t, map[string][]byte{
		"b.txt":       []byte("b"),
		"a.txt":       []byte("a"),
		"sub/c.txt":   []byte("c"),
		"emptydir/.x": []byte(""),
	})
	// An actually empty directory; the fixture writer can't create one.
	if err := os.Remove(filepath.Join(s.Root().Dir(), "emptydir", ".x")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	t.Run("lists root sorted with tags", func(t *testing.T) {
		result, _ := s.handleListFile(context.Background(), callReq(map[string]any{}))
		if result.IsError {
			t.Fatalf("unexpected error: %s", textOf(t, result))
		}
		want := "[FILE] a.txt\n[FILE] b.txt\n[DIR]  emptydir\n[DIR]  sub"
		if got := textOf(t, result); got != want {
			t.Errorf("text = %q, want %q", got, want)
		}
	})

	t.Run("lists a subdirectory", func(t *testing.T) {
		result, _ := s.handleListFile(context.Background(), callReq(map[string]any{"directory_path": "sub"}))
		if got := textOf(t, result); got != "[FILE] c.txt" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		result, _ := s.handleListFile(context.Background(), callReq(map[string]any{"directory_path": "emptydir"}))
		if got := textOf(t, result); got != "Directory 'emptydir' is empty" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		result, _ := s.handleListFile(context.Background(), callReq(map[string]any{"directory_path": "nope"}))
		if !result.IsError || !strings.HasPrefix(textOf(t, result), "ERROR: NOT_FOUND:") {
			t.Errorf("text = %q", textOf(t, result))
		}
	})

	t.Run("file is not a directory", func(t *testing.T) {
		result, _ := s.handleListFile(context.Background(), callReq(map[string]any{"directory_path": "a.txt"}))
		if !result.IsError || !strings.HasPrefix(textOf(t, result), "ERROR: NOT_A_DIRECTORY:") {
			t.Errorf("text = %q", textOf(t, result))
		}
	})

	t.Run("traversal denied", func(t *testing.T) {
		result, _ := s.handleListFile(context.Background(), callReq(map[string]any{"directory_path": "../.."}))
		if !result.IsError || !strings.HasPrefix(textOf(t, result), "ERROR: ACCESS_DENIED:") {
			t.Errorf("text = %q", textOf(t, result))
		}
	})
}

func TestGrepSingleFile(t *testing.T) {
	s := newTestServer(t, map[string][]byte{
		"log.txt": []byte("alpha match one\nnothing\nalpha match two   \n"),
	})

	result, _ := s.handleGrep(context.Background(), callReq(map[string]any{
		"pattern":   "alpha",
		"file_path": "log.txt",
	}))
	if result.IsError {
		t.Fatalf("unexpected error: %s", textOf(t, result))
	}
	// Trailing whitespace is trimmed from matched lines.
	want := "log.txt:1:alpha match one\nlog.txt:3:alpha match two"
	if got := textOf(t, result); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestGrepRecursiveLexicalOrder(t *testing.T) {
	s := newTestServer(t, map[string][]byte{
		"z.txt":     []byte("needle in z\n"),
		"a.txt":     []byte("needle in a\n"),
		"sub/m.txt": []byte("needle in sub\n"),
	})

	result, _ := s.handleGrep(context.Background(), callReq(map[string]any{"pattern": "needle"}))
	want := "a.txt:1:needle in a\nsub/m.txt:1:needle in sub\nz.txt:1:needle in z"
	if got := textOf(t, result); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestGrepMatchCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < MaxGrepMatches+20; i++ {
		fmt.Fprintf(&sb, "needle line %d\n", i)
	}
	s := newTestServer(t, map[string][]byte{"big.txt": []byte(sb.String())})

	result, _ := s.handleGrep(context.Background(), callReq(map[string]any{"pattern": "needle"}))
	got := textOf(t, result)

	if !strings.HasSuffix(got, fmt.Sprintf("\n\n(Showing first %d matches)", MaxGrepMatches)) {
		t.Fatalf("missing truncation marker: %q", got[len(got)-60:])
	}
	body := strings.TrimSuffix(got, fmt.Sprintf("\n\n(Showing first %d matches)", MaxGrepMatches))
	if lines := strings.Split(body, "\n"); len(lines) != MaxGrepMatches {
		t.Errorf("returned %d matches, want %d", len(lines), MaxGrepMatches)
	}
}

func TestGrepNoMatches(t *testing.T) {
	s := newTestServer(t, map[string][]byte{"a.txt": []byte("nothing here\n")})

	result, _ := s.handleGrep(context.Background(), callReq(map[string]any{"pattern": "needle"}))
	if got := textOf(t, result); got != "No matches found for pattern: needle" {
		t.Errorf("text = %q", got)
	}
}

func TestGrepInvalidPattern(t *testing.T) {
	s := newTestServer(t, map[string][]byte{"a.txt": []byte("x\n")})

	result, _ := s.handleGrep(context.Background(), callReq(map[string]any{"pattern": "[unclosed"}))
	if !result.IsError || !strings.HasPrefix(textOf(t, result), "ERROR: INVALID_PATTERN:") {
		t.Errorf("text = %q", textOf(t, result))
	}
}

func TestGrepSkipsBinaryFiles(t *testing.T) {
	s := newTestServer(t, map[string][]byte{
		"bin.dat": {0xff, 0xfe, 'n', 'e', 'e', 'd', 'l', 'e', 0x00},
		"ok.txt":  []byte("needle here\n"),
	})

	result, _ := s.handleGrep(context.Background(), callReq(map[string]any{"pattern": "needle"}))
	if got := textOf(t, result); got != "ok.txt:1:needle here" {
		t.Errorf("text = %q", got)
	}
}

func TestConfigScope(t *testing.T) {
	cfg := &Config{BaseDir: "uploads", UserID: "u1", Category: "docs"}
	if got := cfg.RootDir(); got != filepath.Join("uploads", "u1", "processed", "docs") {
		t.Errorf("RootDir = %q", got)
	}

	for _, bad := range []*Config{
		{UserID: "u", Category: "c"},
		{BaseDir: "b", Category: "c"},
		{BaseDir: "b", UserID: "u"},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Validate(%+v) accepted incomplete scope", bad)
		}
	}
}
