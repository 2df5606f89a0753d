package editor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolve_Order(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	if got := NewEditor("").Resolve(); got != "vi" {
		t.Errorf("Expected vi fallback, got %q", got)
	}

	t.Setenv("EDITOR", "nano")
	if got := NewEditor("").Resolve(); got != "nano" {
		t.Errorf("Expected $EDITOR, got %q", got)
	}

	t.Setenv("VISUAL", "code --wait")
	if got := NewEditor("").Resolve(); got != "code --wait" {
		t.Errorf("Expected $VISUAL to win, got %q", got)
	}

	if got := NewEditor("hx").Resolve(); got != "hx" {
		t.Errorf("Expected explicit command to win, got %q", got)
	}
}

func TestEdit_ReturnsEditedContent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}

	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	body := "#!/bin/sh\nprintf 'hex_length = 8\\n' >> \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := NewEditor(script).Edit("[defaults]\n", "t4f-config-*.toml")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if got != "[defaults]\nhex_length = 8\n" {
		t.Errorf("Edit returned %q", got)
	}
}

func TestEdit_EditorFailure(t *testing.T) {
	if _, err := NewEditor("false").Edit("x", "t4f-*.toml"); err == nil {
		t.Error("Expected error when the editor exits non-zero")
	}
}
