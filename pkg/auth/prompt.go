package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Prompter asks the operator a single question and returns the raw answer
type Prompter interface {
	Ask(label string, secret bool) (string, error)
}

// TerminalPrompter reads answers from a real terminal
type TerminalPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminalPrompter creates a prompter bound to stdin and stdout
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:     os.Stdin,
		out:    os.Stdout,
		reader: bufio.NewReader(os.Stdin),
	}
}

// Ask prints label and reads one line. Secret answers are read without echo.
func (p *TerminalPrompter) Ask(label string, secret bool) (string, error) {
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotInteractive
	}

	fmt.Fprintf(p.out, "%s ", label)

	if secret {
		answer, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out) // New line after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(answer), nil
	}

	return readLine(p.reader)
}

// ReaderPrompter reads answers line by line from any reader.
// It records every label it was asked.
type ReaderPrompter struct {
	reader *bufio.Reader
	out    io.Writer

	mu    sync.Mutex
	asked []string
}

// NewReaderPrompter creates a prompter that reads from r and echoes labels to out
func NewReaderPrompter(r io.Reader, out io.Writer) *ReaderPrompter {
	if out == nil {
		out = io.Discard
	}
	return &ReaderPrompter{
		reader: bufio.NewReader(r),
		out:    out,
	}
}

// NewScriptedPrompter replays the given answers in order
func NewScriptedPrompter(answers ...string) *ReaderPrompter {
	script := strings.Join(answers, "\n")
	if len(answers) > 0 {
		script += "\n"
	}
	return NewReaderPrompter(strings.NewReader(script), nil)
}

// Ask prints label and reads the next line
func (p *ReaderPrompter) Ask(label string, secret bool) (string, error) {
	p.mu.Lock()
	p.asked = append(p.asked, label)
	p.mu.Unlock()

	fmt.Fprintf(p.out, "%s ", label)
	return readLine(p.reader)
}

// Asked returns the labels asked so far
func (p *ReaderPrompter) Asked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	asked := make([]string, len(p.asked))
	copy(asked, p.asked)
	return asked
}

// readLine returns the next line without its terminator.
// A final unterminated line is returned; EOF with nothing read is an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
