package review

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Editor rewrites one digest block during review.
type Editor interface {
	EditText(text string) (string, error)
}

// ExternalEditor launches $EDITOR on a temp file holding the block.
type ExternalEditor struct {
	// Command overrides the $EDITOR lookup. Mainly for tests.
	Command string
}

// EditText implements Editor.
func (e *ExternalEditor) EditText(text string) (string, error) {
	command := e.Command
	if command == "" {
		command = os.Getenv("EDITOR")
	}
	if command == "" {
		return "", errors.New("no editor configured, set $EDITOR")
	}

	tmp, err := os.CreateTemp("", "radar-review-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	parts := strings.Fields(command)
	args := append(parts[1:], path)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return strings.TrimSpace(string(edited)), nil
}
