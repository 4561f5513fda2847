// Package ui writes front-end output, paging long listings when stdout is
// a terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// PagerEnv overrides $PAGER for crun output.
const PagerEnv = "CRUN_PAGER"

// Writer prints to an output stream and optionally pages long content.
type Writer struct {
	out           io.Writer
	pagerDisabled bool
	envGetter     func(string) string
	isTerminal    func(io.Writer) bool
	runPager      func(name string, args []string, content string) error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithEnvGetter sets the environment variable getter function.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo creates a new Writer that writes to the specified writer.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:        out,
		envGetter:  os.Getenv,
		isTerminal: fileIsTerminal,
	}
	w.runPager = w.execPager
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// Pager displays content through a pager when the output is a terminal.
// Resolution order: disabled, not a TTY, CRUN_PAGER, PAGER, less -FRSX.
// A pager named "cat" prints directly.
func (w *Writer) Pager(content string) {
	if w.pagerDisabled || !w.isTerminal(w.out) {
		fmt.Fprint(w.out, content)
		return
	}

	pagerCmd := w.envGetter(PagerEnv)
	if pagerCmd == "" {
		pagerCmd = w.envGetter("PAGER")
	}
	if pagerCmd == "" {
		pagerCmd = "less -FRSX"
	}

	parts := strings.Fields(pagerCmd)
	if len(parts) == 0 || parts[0] == "cat" {
		fmt.Fprint(w.out, content)
		return
	}
	if err := w.runPager(parts[0], parts[1:], content); err != nil {
		fmt.Fprint(w.out, content)
	}
}

func (w *Writer) execPager(name string, args []string, content string) error {
	cmd := exec.Command(name, args...) //nolint:gosec
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func fileIsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
