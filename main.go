package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gridsheet/events"
	"gridsheet/spreadsheet"
	"gridsheet/storage"
	"gridsheet/terminal"
	"gridsheet/web"
)

// Invocation: `gridsheet <rows> <cols> [snapshot-path]`.
// Invalid argument counts or out-of-range values exit non-zero
// immediately.
func main() {
	os.Exit(run(os.Args[1:]))
}

// parsedArgs is the validated form of the CLI's positional arguments.
type parsedArgs struct {
	rows, cols int
	path       string // "" if no snapshot-path was given
}

// parseArgs validates os.Args[1:] against the invocation rules above.
func parseArgs(args []string) (parsedArgs, error) {
	if len(args) < 2 || len(args) > 3 {
		return parsedArgs{}, fmt.Errorf("expected 2 or 3 arguments, got %d", len(args))
	}
	rows, err := strconv.Atoi(args[0])
	if err != nil || rows < 1 || rows > spreadsheet.MaxRows {
		return parsedArgs{}, fmt.Errorf("rows must be an integer in [1,%d], got %q", spreadsheet.MaxRows, args[0])
	}
	cols, err := strconv.Atoi(args[1])
	if err != nil || cols < 1 || cols > spreadsheet.MaxCols {
		return parsedArgs{}, fmt.Errorf("cols must be an integer in [1,%d], got %q", spreadsheet.MaxCols, args[1])
	}
	out := parsedArgs{rows: rows, cols: cols}
	if len(args) == 3 {
		out.path = args[2]
	}
	return out, nil
}

func run(args []string) int {
	parsed, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridsheet: %v\n", err)
		usage()
		return 2
	}

	sheet, err := loadOrCreate(parsed.rows, parsed.cols, parsed.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridsheet: %v\n", err)
		return 1
	}

	hooks, webServer := buildHooks(sheet)

	bus, busErr := events.NewBus(context.Background(), "tcp://127.0.0.1:5556")
	if busErr != nil {
		log.Printf("events: bus unavailable, continuing without it: %v", busErr)
	} else {
		defer bus.Close()
	}

	hooks.OnCommand = func(line string, status spreadsheet.Status, elapsedSeconds float64) {
		if bus != nil {
			bus.Publish(line, status, elapsedSeconds)
		}
		if *webServer != nil {
			(*webServer).Broadcast()
		}
	}

	terminal.Run(os.Stdin, os.Stdout, sheet, hooks)
	return 0
}

func loadOrCreate(rows, cols int, path string) (*spreadsheet.Sheet, error) {
	if path == "" {
		return spreadsheet.NewSheet(rows, cols)
	}
	if strings.HasPrefix(path, "postgres://") {
		return loadFromPostgres(path)
	}
	return storage.LoadFile(path)
}

func loadFromPostgres(dsn string) (*spreadsheet.Sheet, error) {
	ctx := context.Background()
	store, err := storage.OpenPostgresStore(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx, "default")
}

// buildHooks wires the save/web/web_start statuses to the storage and
// web packages. These are the external collaborators named by the
// core dispatcher's Status, which only ever carries the path.
// The returned *web.Server pointer is nil until a Web or WebStart
// command fires; the caller uses it to broadcast post-command
// snapshots to any connected viewers.
func buildHooks(sheet *spreadsheet.Sheet) (terminal.Hooks, **web.Server) {
	var webServer *web.Server

	startServer := func(addr string) {
		webServer = web.NewServer(sheet)
		go func() {
			if err := webServer.ListenAndServe(addr); err != nil {
				log.Printf("web server stopped: %v", err)
			}
		}()
	}

	hooks := terminal.Hooks{
		Save: func(path string) error {
			if strings.HasPrefix(path, "postgres://") {
				ctx := context.Background()
				store, err := storage.OpenPostgresStore(ctx, path)
				if err != nil {
					return err
				}
				defer store.Close()
				return store.Save(ctx, "default", sheet)
			}
			return storage.SaveFile(sheet, path)
		},
		Web: func(addr string) error {
			startServer(addr)
			return nil
		},
		WebStart: func() error {
			if webServer == nil {
				startServer(":8080")
			}
			return nil
		},
	}
	return hooks, &webServer
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  gridsheet <rows> <cols> [snapshot-path]\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  rows            1..%d\n", spreadsheet.MaxRows)
	fmt.Fprintf(os.Stderr, "  cols            1..%d\n", spreadsheet.MaxCols)
	fmt.Fprintf(os.Stderr, "  snapshot-path   optional file path or postgres:// DSN to resume from\n")
}
