package terminal

import (
	"io"
	"log"

	"gridsheet/spreadsheet"
)

// Hooks lets the loop delegate the operations the reactive core
// doesn't implement itself: save, web, and web_start are external
// collaborators. Every hook may be nil, in which case the loop logs
// that the operation isn't wired up and continues.
type Hooks struct {
	Save     func(path string) error
	Web      func(path string) error
	WebStart func() error

	// OnCommand, if set, is called after every processed line with the
	// raw input and the outcome — e.g. to publish it on the events bus.
	OnCommand func(line string, status spreadsheet.Status, elapsedSeconds float64)
}

// Run drives one interactive session: read a line, dispatch it to
// sheet, update the viewport or invoke a hook for operations the core
// doesn't own, render, repeat. Returns when the input stream ends or
// the user quits or the input stream ends.
func Run(in io.Reader, out io.Writer, sheet *spreadsheet.Sheet, hooks Hooks) {
	rows, cols := sheet.Grid().Size()
	vp := NewViewport(rows, cols)
	src := newLineSource(in, out)
	defer src.Close()

	status := spreadsheet.Status{Kind: spreadsheet.StatusSuccess}
	var elapsed float64

	for {
		Render(out, sheet, vp, elapsed, status)
		line, ok := src.ReadLine("")
		if !ok {
			return
		}

		var dur float64
		status, dur = dispatchLine(sheet, vp, hooks, line)
		elapsed = dur
		if hooks.OnCommand != nil {
			hooks.OnCommand(line, status, elapsed)
		}
		if status.Kind == spreadsheet.StatusQuit {
			Render(out, sheet, vp, elapsed, status)
			return
		}
	}
}

func dispatchLine(sheet *spreadsheet.Sheet, vp *Viewport, hooks Hooks, line string) (spreadsheet.Status, float64) {
	status, elapsed := sheet.ProcessCommand(line)

	switch status.Kind {
	case spreadsheet.StatusUp:
		vp.Up()
	case spreadsheet.StatusDown:
		vp.Down()
	case spreadsheet.StatusLeft:
		vp.Left()
	case spreadsheet.StatusRight:
		vp.Right()
	case spreadsheet.StatusScrollToKind:
		vp.ScrollTo(status.Row, status.Col)
	case spreadsheet.StatusSaveKind:
		runHook("save", hooks.Save, status.Path)
	case spreadsheet.StatusWebKind:
		runHook("web", hooks.Web, status.Path)
	case spreadsheet.StatusWebStart:
		if hooks.WebStart != nil {
			if err := hooks.WebStart(); err != nil {
				log.Printf("web_start failed: %v", err)
			}
		} else {
			log.Printf("web_start: no web server hook configured")
		}
	}

	return status, elapsed.Seconds()
}

func runHook(name string, hook func(string) error, path string) {
	if hook == nil {
		log.Printf("%s: no hook configured for %q", name, path)
		return
	}
	if err := hook(path); err != nil {
		log.Printf("%s %s failed: %v", name, path, err)
	}
}
