// Command gridsync-replay plays a recorded msgpack-rpc redraw stream on
// the terminal. Record one with e.g. `nvim --embed` piped through tee.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/gridsync"
	"github.com/hnimtadd/gridsync/logger"
	"github.com/hnimtadd/gridsync/rpc"
	"github.com/hnimtadd/gridsync/ui/grid"
	"github.com/hnimtadd/gridsync/ui/tui"
)

func main() {
	file := flag.String("file", "-", "recorded stream to replay, - for stdin")
	logFile := flag.String("log", "", "write logs to this file (default: discard)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	strict := flag.Bool("strict", false, "report unknown redraw events as errors")
	gridID := flag.Uint64("grid", grid.DefaultGrid, "grid to show")
	delay := flag.Duration("delay", 0, "pause after every painted flush")
	flag.Parse()

	if err := run(*file, *logFile, *logLevel, *strict, *gridID, *delay); err != nil {
		fmt.Fprintf(os.Stderr, "gridsync-replay: %v\n", err)
		os.Exit(1)
	}
}

func run(file, logFile, logLevel string, strict bool, gridID uint64, delay time.Duration) error {
	in := io.Reader(os.Stdin)
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	log := logger.Nop
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		log = logger.New(logger.Options{Buffer: f, Level: logger.ParseLevel(logLevel)})
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	session := gridsync.NewSession(gridsync.Options{Logger: log, Strict: strict})
	state := session.State()
	renderer := tui.New(screen, state.Grids(), state.Highlights(), tui.Options{Logger: log, Grid: gridID})
	state.Grids().SetRenderer(renderer)
	state.Grids().ConnectKeyPress(func(id uint64, ev grid.KeyEvent) bool {
		log.Info("key", "grid", id, "key", ev.Key)
		return true
	})
	state.Grids().ConnectButtonPress(func(id uint64, ev grid.ButtonEvent) {
		log.Info("button press", "grid", id, "button", ev.Button, "row", ev.Row, "col", ev.Col)
	})
	state.Grids().ConnectScroll(func(id uint64, ev grid.ScrollEvent) {
		log.Info("scroll", "grid", id, "direction", ev.Direction, "row", ev.Row, "col", ev.Col)
	})

	dec := rpc.NewDecoder(in)
	for {
		msg, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
		session.Handle(msg)
		if renderer.Pending() {
			renderer.Paint()
			if delay > 0 {
				time.Sleep(delay)
			}
		}
	}

	// Keep the last frame up until the user quits.
	input := tui.NewInput(state.Grids(), gridID)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEsc || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
			input.Handle(ev)
		default:
			input.Handle(ev)
		}
	}
}
