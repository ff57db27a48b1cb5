package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
)

// Console is the typed channel: reads commands from an input stream
// and prints narration to an output stream. It is both the text-mode
// channel and the fallback when audio gives out.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ domain.Channel = (*Console)(nil)

// NewConsole creates a console channel over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Listen reads one line of input. The timeout is ignored; a blocking
// terminal read has no utterance window. Returns io.EOF when the
// input stream ends.
func (c *Console) Listen(_ context.Context, _ time.Duration) (string, error) {
	fmt.Fprint(c.out, "> ")
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Speak prints the narration line.
func (c *Console) Speak(_ context.Context, text string) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}
