package appconfig

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrInputClosed is returned when the input stream ends before a question
// is answered.
var ErrInputClosed = errors.New("input closed before all configuration was collected")

// LinePrompter asks questions over plain line-oriented streams. It is used
// when stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter reading answers from in and writing
// questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask implements Prompter.
func (p *LinePrompter) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.out, "\n> %s (%s) [%s]\n- ", q.Title, q.Description, q.Default)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		// A final answer without a trailing newline still counts.
		if line == "" {
			return "", ErrInputClosed
		}
	}

	return strings.TrimSpace(line), nil
}

// FormPrompter asks questions with huh input fields on a terminal.
type FormPrompter struct{}

// Ask implements Prompter.
func (FormPrompter) Ask(_ context.Context, q Question) (string, error) {
	var answer string

	err := huh.NewInput().
		Title(q.Title).
		Description(fmt.Sprintf("%s [%s]", q.Description, q.Default)).
		Placeholder(q.Default).
		Value(&answer).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			return q.Validate(strings.TrimSpace(s))
		}).
		Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
