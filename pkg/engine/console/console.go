// Package console implements a line-oriented REPL driver for pkg/engine's
// Game facade, grounded on the teacher's console.Driver shape: an
// iox.AsyncCloser-backed goroutine reading a line channel and writing an
// output channel.
package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rqnsom/chessturn/pkg/chess"
	"github.com/rqnsom/chessturn/pkg/engine"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// ReadLines reads the protocol selector and subsequent SAN turns/commands
// from stdin into a chan, one line at a time. Async; the chan is closed
// when stdin is exhausted.
func ReadLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< turn/command %q", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// WriteLines writes the driver's board/state/error responses from the given
// chan to stdout, one line at a time.
func WriteLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> response %q", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}

// Driver implements a console driver for interactive play and debugging.
type Driver struct {
	iox.AsyncCloser

	g   *engine.Game
	out chan<- string
}

// NewDriver starts a driver reading SAN turns and commands from in, writing
// responses to the returned channel.
func NewDriver(ctx context.Context, g *engine.Game, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		g:           g,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- "chessturn console"
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}
			cmd := parts[0]

			switch strings.ToLower(cmd) {
			case "undo", "u":
				if err := d.g.UndoTurn(ctx); err != nil {
					d.out <- fmt.Sprintf("undo failed: %v", err)
					break
				}
				d.printBoard()

			case "print", "p":
				d.printBoard()

			case "fancy", "f":
				d.out <- d.g.Display(chess.DisplayOption{Kind: chess.BoardView, Mode: chess.FancyTUI})

			case "turns", "moves":
				turns := d.g.AvailableTurns()
				sans := make([]string, len(turns))
				for i, t := range turns {
					sans[i] = t.SAN()
				}
				d.out <- strings.Join(sans, " ")

			case "history", "h":
				d.out <- d.g.Display(chess.DisplayOption{Kind: chess.TurnHistory})

			case "captures", "c":
				d.out <- d.g.Display(chess.DisplayOption{Kind: chess.CaptureHistory})

			case "state", "s":
				d.out <- d.g.GameState().String()

			case "quit", "exit", "q":
				return

			case "":
				// ignore empty command

			default:
				// Assume a SAN turn if not a recognized command.

				state, err := d.g.PlayTurn(ctx, cmd)
				if err != nil {
					d.out <- fmt.Sprintf("invalid turn %q: %v", cmd, err)
					break
				}
				d.printBoard()
				if state.IsTerminal() {
					d.out <- fmt.Sprintf("game over: %v", state)
				}
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) printBoard() {
	d.out <- ""
	d.out <- d.g.Display(chess.DisplayOption{Kind: chess.BoardView, Mode: chess.SimpleAscii})
	d.out <- fmt.Sprintf("state: %v", d.g.GameState())
	d.out <- ""
}
