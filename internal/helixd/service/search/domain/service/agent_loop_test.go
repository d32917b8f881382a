package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiosk404/helix/internal/helixd/service/search/backend"
	"github.com/kiosk404/helix/internal/helixd/service/search/pkg/errno"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "u1", "processed", "links")
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return base
}

func newTestBackend(t *testing.T, baseDir string) backend.Backend {
	t.Helper()
	factory := backend.NewInProcessFactory(baseDir)
	b, err := factory(context.Background(), backend.Key{UserID: "u1", Category: "links", RequestID: "r1"})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestAgentLoopDirectAnswer(t *testing.T) {
	base := writeCorpus(t, map[string]string{"notes.txt": "kubernetes setup notes\n"})
	b := newTestBackend(t, base)

	chat := newScriptedChatModel(reply("nothing relevant saved"))
	loop := NewAgentLoop("links", chat, b, 8)

	result, turns, err := loop.Run(context.Background(), "system", "query")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != "nothing relevant saved" {
		t.Errorf("result = %q", result)
	}
	if turns != 1 {
		t.Errorf("turns = %d, want 1", turns)
	}
	if len(chat.boundTools) != 3 {
		t.Fatalf("bound %d tools, want 3", len(chat.boundTools))
	}
	names := make(map[string]bool)
	for _, info := range chat.boundTools {
		names[info.Name] = true
	}
	for _, want := range []string{"read_file", "list_file", "grep"} {
		if !names[want] {
			t.Errorf("tool %s not bound", want)
		}
	}
}

func TestAgentLoopToolRoundTrip(t *testing.T) {
	base := writeCorpus(t, map[string]string{"notes.txt": "kubernetes setup notes\n"})
	b := newTestBackend(t, base)

	chat := newScriptedChatModel(
		reply("", toolCall("c1", "read_file", `{"file_path":"notes.txt"}`)),
		reply("found kubernetes setup notes"),
	)
	loop := NewAgentLoop("links", chat, b, 8)

	result, turns, err := loop.Run(context.Background(), "system", "query")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != "found kubernetes setup notes" {
		t.Errorf("result = %q", result)
	}
	if turns != 2 {
		t.Errorf("turns = %d, want 2", turns)
	}
}

func TestAgentLoopToolFailureContinues(t *testing.T) {
	base := writeCorpus(t, map[string]string{"notes.txt": "notes\n"})
	b := newTestBackend(t, base)

	// Reading a missing file yields a tool-level error that feeds back into
	// the conversation; the loop keeps going.
	chat := newScriptedChatModel(
		reply("", toolCall("c1", "read_file", `{"file_path":"missing.txt"}`)),
		reply("file was not found"),
	)
	loop := NewAgentLoop("links", chat, b, 8)

	result, _, err := loop.Run(context.Background(), "system", "query")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != "file was not found" {
		t.Errorf("result = %q", result)
	}
}

func TestAgentLoopBadArguments(t *testing.T) {
	base := writeCorpus(t, map[string]string{"notes.txt": "notes\n"})
	b := newTestBackend(t, base)

	chat := newScriptedChatModel(
		reply("", toolCall("c1", "read_file", `{not json`)),
		reply("recovered"),
	)
	loop := NewAgentLoop("links", chat, b, 8)

	result, _, err := loop.Run(context.Background(), "system", "query")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != "recovered" {
		t.Errorf("result = %q", result)
	}
}

func TestAgentLoopTurnLimit(t *testing.T) {
	base := writeCorpus(t, map[string]string{"notes.txt": "notes\n"})
	b := newTestBackend(t, base)

	chat := newScriptedChatModel(
		reply("", toolCall("c1", "list_file", `{}`)),
		reply("", toolCall("c2", "list_file", `{}`)),
		reply("", toolCall("c3", "list_file", `{}`)),
	)
	loop := NewAgentLoop("links", chat, b, 2)

	_, turns, err := loop.Run(context.Background(), "system", "query")
	if !errors.Is(err, errno.ErrTurnLimitExceeded) {
		t.Fatalf("err = %v, want ErrTurnLimitExceeded", err)
	}
	if turns != 2 {
		t.Errorf("turns = %d, want 2", turns)
	}
}

func TestAgentLoopEmptyAnswer(t *testing.T) {
	base := writeCorpus(t, map[string]string{"notes.txt": "notes\n"})
	b := newTestBackend(t, base)

	chat := newScriptedChatModel(reply(""))
	loop := NewAgentLoop("links", chat, b, 8)

	_, _, err := loop.Run(context.Background(), "system", "query")
	if !errors.Is(err, errno.ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
}

func TestAgentLoopModelFailure(t *testing.T) {
	base := writeCorpus(t, map[string]string{"notes.txt": "notes\n"})
	b := newTestBackend(t, base)

	chat := newScriptedChatModel(replyErr(errors.New("provider down")))
	loop := NewAgentLoop("links", chat, b, 8)

	_, _, err := loop.Run(context.Background(), "system", "query")
	if err == nil || !strings.Contains(err.Error(), "provider down") {
		t.Fatalf("err = %v, want provider failure", err)
	}
}
