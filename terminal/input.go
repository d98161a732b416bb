// Package terminal is the external renderer: it owns the viewport, the
// grid printing, and the line-at-a-time input loop that drives
// spreadsheet.Sheet.ProcessCommand. None of this is part of the
// reactive core; it only consumes the core's public contract
// (ProcessCommand, ValueAt).
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// lineSource abstracts "read one line of input" (returned untrimmed;
// ParseCommand does the trimming), with a raw
// TTY implementation for a nicer interactive session and a plain
// bufio.Scanner fallback for piped/non-interactive input, mirroring
// karl's repl.Start, which picks between the two the same way.
type lineSource interface {
	ReadLine(prompt string) (string, bool)
	Close()
}

// scannerSource is the non-TTY fallback: no cursor editing, just
// line-buffered reads.
type scannerSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (s *scannerSource) ReadLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

func (s *scannerSource) Close() {}

// ttySource puts the terminal into raw mode and reads byte-by-byte so
// it can support Enter/Backspace/Ctrl-C/Ctrl-D directly; any other
// byte, Ctrl-L included, is appended to the line as typed. It
// intentionally does not implement history or arrow-key recall: every
// spreadsheet command is typed and submitted with Enter, so
// there is no multi-line or replay affordance to support, unlike
// karl's general-purpose REPL.
type ttySource struct {
	in    *os.File
	out   io.Writer
	state *term.State
}

func newLineSource(in io.Reader, out io.Writer) lineSource {
	inFile, ok1 := in.(*os.File)
	outFile, ok2 := out.(*os.File)
	if ok1 && ok2 && term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd())) {
		if state, err := term.MakeRaw(int(inFile.Fd())); err == nil {
			return &ttySource{in: inFile, out: out, state: state}
		}
	}
	return &scannerSource{scanner: bufio.NewScanner(in), out: out}
}

func (t *ttySource) Close() {
	if t.state != nil {
		_ = term.Restore(int(t.in.Fd()), t.state)
	}
}

func (t *ttySource) ReadLine(prompt string) (string, bool) {
	fmt.Fprint(t.out, prompt)
	line := make([]byte, 0, 64)
	buf := make([]byte, 1)

	for {
		n, err := t.in.Read(buf)
		if n == 0 || err != nil {
			return "", false
		}
		switch buf[0] {
		case '\r', '\n':
			fmt.Fprint(t.out, "\r\n")
			return string(line), true
		case 0x03, 0x04: // Ctrl+C, Ctrl+D
			fmt.Fprint(t.out, "\r\n")
			return "", false
		case 0x7f, 0x08: // Backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Fprint(t.out, "\b \b")
			}
		default:
			line = append(line, buf[0])
			t.out.Write(buf)
		}
	}
}
