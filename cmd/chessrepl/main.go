package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rqnsom/chessturn/pkg/chess"
	"github.com/rqnsom/chessturn/pkg/engine"
	"github.com/rqnsom/chessturn/pkg/engine/console"
	"github.com/seekerror/logw"
)

var (
	setup = flag.String("setup", chess.NormalSetupToken, "Initial position: 'normal' or a custom placement string")
	seed  = flag.Int64("seed", 0, "Zobrist hash seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: chessrepl [options]

CHESSREPL is a turn-by-turn chess rules engine with a console driver.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	g, err := engine.NewGame(ctx, chess.CustomSetup(*setup), engine.WithZobrist(*seed))
	if err != nil {
		logw.Exitf(ctx, "Invalid setup: %v", err)
	}

	in := console.ReadLines(ctx)
	switch <-in {
	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, g, in)
		go console.WriteLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
