package editor

import (
	"os"
	"os/exec"
	"strings"
)

// Editor handles editor resolution and invocation.
type Editor struct {
	command string
}

// NewEditor creates a new Editor. An empty command means resolve from the
// environment.
func NewEditor(command string) *Editor {
	return &Editor{command: command}
}

// Resolve returns the editor command to use.
// Order: explicit command > $VISUAL > $EDITOR > vi
func (e *Editor) Resolve() string {
	if e.command != "" {
		return e.command
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}
	return "vi"
}

// Edit opens the editor on a temp copy of content and returns the edited
// content. The temp file keeps pattern's extension for syntax highlighting.
func (e *Editor) Edit(content, pattern string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	// $EDITOR may carry arguments, e.g. "code --wait".
	fields := strings.Fields(e.Resolve())
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	cmd := exec.Command(fields[0], append(fields[1:], tmpPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}

	return string(edited), nil
}
