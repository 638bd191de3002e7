package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader yields one line of user input per call.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type basicInput struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewBasicInput reads lines from in, printing prompts to out.
func NewBasicInput(in io.Reader, out io.Writer) LineReader {
	return &basicInput{reader: bufio.NewReader(in), out: out}
}

func (b *basicInput) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *basicInput) Close() error { return nil }

type readlineInput struct {
	instance *readline.Instance
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

func (r *readlineInput) Close() error { return r.instance.Close() }

// NewLineReader prefers an interactive readline with history at
// historyPath and falls back to plain stdin, returning the readline error.
func NewLineReader(historyPath string) (LineReader, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return NewBasicInput(os.Stdin, os.Stdout), fmt.Errorf("create history dir: %w", err)
		}
	}

	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
	})
	if err != nil {
		return NewBasicInput(os.Stdin, os.Stdout), err
	}
	return &readlineInput{instance: instance}, nil
}
