// Package review drives the interactive digest triage session: one pass
// over the raw digest, accepting, editing, or discarding each entry before
// it reaches the import digest.
package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"radar/internal/digest"
	"radar/internal/fileutil"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
)

// ErrCanceled indicates the user aborted before any write.
var ErrCanceled = errors.New("review canceled")

// Destination chooses what happens to an already populated import digest.
type Destination int

const (
	DestinationAppend Destination = iota
	DestinationOverwrite
	DestinationCancel
)

// Stats summarizes one review session.
type Stats struct {
	Accepted  int
	Edited    int
	Discarded int
	Quit      bool
}

// Session reads decisions from input and writes the reviewed digest.
type Session struct {
	input    io.Reader
	output   io.Writer
	editor   Editor
	colorize bool
}

// Option configures a Session.
type Option func(*Session)

// WithEditor replaces the default external editor.
func WithEditor(e Editor) Option {
	return func(s *Session) {
		if e != nil {
			s.editor = e
		}
	}
}

// WithIO redirects the session terminal streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Session) {
		if in != nil {
			s.input = in
		}
		if out != nil {
			s.output = out
		}
	}
}

// NewSession creates a review session bound to stdin/stdout.
func NewSession(opts ...Option) *Session {
	s := &Session{
		input:  os.Stdin,
		output: os.Stdout,
		editor: &ExternalEditor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if file, ok := s.output.(*os.File); ok {
		fd := file.Fd()
		s.colorize = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return s
}

// Run reviews rawText and writes the surviving blocks to destPath. When the
// destination already has entries the user chooses upfront between
// appending, overwriting, and canceling. An interrupt or EOF mid-session
// keeps the decisions made so far.
func (s *Session) Run(ctx context.Context, rawText, destPath string) (*Stats, error) {
	blocks := digest.Blocks(rawText)
	if len(blocks) == 0 {
		return nil, errors.New("raw digest is empty, run the monitor first")
	}

	existing := ""
	if data, err := os.ReadFile(destPath); err == nil {
		existing = strings.TrimSpace(string(data))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read destination digest: %w", err)
	}

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	dest := DestinationOverwrite
	if existing != "" {
		dest = s.chooseDestination(ctx, lines, digest.Count(existing))
		if dest == DestinationCancel {
			return nil, ErrCanceled
		}
	}

	stats := &Stats{}
	var kept []string

	for i, block := range blocks {
		s.printBlock(i+1, len(blocks), block)

		answer, ok := s.prompt(ctx, lines, "[A]ccept / [E]dit / [D]iscard / [Q]uit > ")
		if !ok {
			stats.Quit = true
			break
		}

		switch strings.ToUpper(strings.TrimSpace(answer)) {
		case "A":
			kept = append(kept, block)
			stats.Accepted++
		case "E":
			edited, err := s.editor.EditText(block)
			if err != nil {
				s.printf("%s\n", warn("edit failed: "+err.Error()+", keeping original", s.colorize))
				kept = append(kept, block)
				stats.Accepted++
				continue
			}
			if strings.TrimSpace(edited) == "" {
				stats.Discarded++
				continue
			}
			kept = append(kept, edited)
			stats.Accepted++
			stats.Edited++
		case "Q":
			stats.Quit = true
		default:
			stats.Discarded++
		}
		if stats.Quit {
			break
		}
	}

	// Nothing kept means nothing to write; the destination keeps whatever
	// it already had even when Overwrite was chosen.
	if len(kept) > 0 {
		if err := s.write(destPath, existing, dest, kept); err != nil {
			return stats, err
		}
	}

	s.printf("\n%s accepted, %d edited, %d discarded\n",
		okText(fmt.Sprintf("%d", stats.Accepted), s.colorize), stats.Edited, stats.Discarded)
	return stats, nil
}

// write assembles the final digest. Accepted blocks are renumbered after
// any existing entries so markers stay contiguous.
func (s *Session) write(destPath, existing string, dest Destination, kept []string) error {
	offset := 0
	prefix := ""
	if dest == DestinationAppend && existing != "" {
		offset = digest.Count(existing)
		prefix = existing + "\n\n"
	}

	content := prefix + digest.Renumber(kept, offset)
	content = strings.TrimSpace(content)
	if content != "" {
		content += "\n"
	}
	return fileutil.WriteFileAtomic(destPath, []byte(content), 0o644)
}

func (s *Session) chooseDestination(ctx context.Context, lines <-chan string, existingCount int) Destination {
	s.printf("Destination digest already has %d entries.\n", existingCount)
	answer, ok := s.prompt(ctx, lines, "[A]ppend / [O]verwrite / [C]ancel > ")
	if !ok {
		return DestinationCancel
	}
	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case "A":
		return DestinationAppend
	case "O":
		return DestinationOverwrite
	default:
		return DestinationCancel
	}
}

// prompt reads one line, returning ok=false on EOF or cancellation.
func (s *Session) prompt(ctx context.Context, lines <-chan string, text string) (string, bool) {
	s.printf("%s", text)
	select {
	case <-ctx.Done():
		return "", false
	case line, open := <-lines:
		if !open {
			return "", false
		}
		return line, true
	}
}

func (s *Session) printBlock(n, total int, block string) {
	title := digest.Title(block)
	_, body, _ := strings.Cut(block, "\n")

	s.printf("\n%s\n", header(fmt.Sprintf("[%d/%d] %s", n, total, title), s.colorize))
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		s.printf("  %s\n", fieldLine(line, s.colorize))
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.output, format, args...)
}

func header(text string, colorize bool) string {
	if colorize {
		return ansiBold + ansiCyan + text + ansiReset
	}
	return text
}

// fieldLine highlights the label of a labeled field line.
func fieldLine(line string, colorize bool) string {
	if !colorize {
		return line
	}
	if label, rest, found := strings.Cut(line, ":"); found && len(label) < 20 {
		return ansiYellow + label + ":" + ansiReset + rest
	}
	return line
}

func warn(text string, colorize bool) string {
	if colorize {
		return ansiYellow + text + ansiReset
	}
	return text
}

func okText(text string, colorize bool) string {
	if colorize {
		return ansiGreen + text + ansiReset
	}
	return text
}
