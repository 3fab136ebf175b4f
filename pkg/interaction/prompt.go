// pkg/interaction/prompt.go

// Package interaction reads user input for ship's interactive run.
package interaction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ErrCancelled is returned when input ends or the user interrupts the prompt.
var ErrCancelled = errors.New("input cancelled")

// Prompter reads single lines of input, writing prompts to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// HandleSignals turns SIGINT/SIGTERM into ErrCancelled while waiting.
	HandleSignals bool

	reader *bufio.Reader
	// pending is a read left in flight by a cancelled prompt. The next
	// prompt takes its line instead of starting a second reader.
	pending chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewPrompter prompts on out and reads from in, with signal handling on.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: in, Out: out, HandleSignals: true}
}

// Stdio is a Prompter over the process's stdin, prompting on stderr so
// stdout stays clean for scripted use.
func Stdio() *Prompter {
	return NewPrompter(os.Stdin, os.Stderr)
}

// PromptLine shows label and returns the next line, trimmed. An empty line
// is a valid answer. End of input before any text, an interrupt or a
// cancelled ctx all return ErrCancelled.
func (p *Prompter) PromptLine(ctx context.Context, label string) (string, error) {
	logger := otelzap.Ctx(ctx)
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	_, _ = fmt.Fprint(p.Out, label+": ")

	var sigChan chan os.Signal
	if p.HandleSignals {
		sigChan = make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)
	}

	lines := p.pending
	p.pending = nil
	if lines == nil {
		lines = make(chan lineResult, 1)
		go func() {
			text, err := p.reader.ReadString('\n')
			lines <- lineResult{text: text, err: err}
		}()
	}

	select {
	case r := <-lines:
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.text != "") {
			_, _ = fmt.Fprintln(p.Out)
			if errors.Is(r.err, io.EOF) {
				logger.Debug("Input closed at prompt", zap.String("label", label))
				return "", ErrCancelled
			}
			return "", fmt.Errorf("read input: %w", r.err)
		}
		return strings.TrimSpace(r.text), nil

	case <-ctx.Done():
		p.pending = lines
		_, _ = fmt.Fprintln(p.Out)
		logger.Debug("Prompt context done", zap.Error(ctx.Err()))
		return "", fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())

	case sig := <-sigChan:
		p.pending = lines
		_, _ = fmt.Fprintln(p.Out)
		logger.Info("Received signal, cancelling prompt", zap.String("signal", sig.String()))
		return "", fmt.Errorf("%w: %s", ErrCancelled, sig)
	}
}
