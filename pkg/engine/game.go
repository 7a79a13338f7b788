// Package engine wraps pkg/chess's turn engine and legal-turn enumerator
// into the module's single external surface: a mutex-guarded Game facade
// with functional creation options and version-stamped logging, in the
// same shape as the teacher's Engine facade.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rqnsom/chessturn/pkg/chess"
	"github.com/rqnsom/chessturn/pkg/notation"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are game creation options.
type Options struct {
	// ZobristSeed seeds the position-hash table. Zero uses the default seed.
	ZobristSeed int64
}

func (o Options) String() string {
	return fmt.Sprintf("{zobristSeed=%v}", o.ZobristSeed)
}

// Option is a game creation option.
type Option func(*Game)

// WithOptions sets creation-time options.
func WithOptions(opts Options) Option {
	return func(g *Game) { g.opts = opts }
}

// WithZobrist configures the game to use the given random seed for its
// position-hash table instead of the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(g *Game) { g.opts.ZobristSeed = seed }
}

// Game is the mutating facade over a chess.Board. It owns the turn history
// stack and the mutex guarding every operation: PlayTurn/UndoTurn take an
// exclusive lock to mutate, GameState/AvailableTurns/Display take the same
// lock to read a consistent snapshot.
type Game struct {
	name string
	opts Options

	zt *chess.HashTable
	b  *chess.Board

	history []chess.Snapshot

	mu sync.Mutex
}

// NewGame creates a game from the given setup (the normal starting position
// or a free-form custom placement).
func NewGame(ctx context.Context, setup chess.Setup, opts ...Option) (*Game, error) {
	g := &Game{name: "chessturn"}
	for _, fn := range opts {
		fn(g)
	}
	g.zt = chess.NewHashTable(g.opts.ZobristSeed)

	b, err := chess.NewBoardFromSetup(g.zt, setup)
	if err != nil {
		return nil, fmt.Errorf("invalid setup: %w", err)
	}
	g.b = b

	logw.Infof(ctx, "Initialized game: %v %v, options=%v", g.name, version, g.opts)
	logw.Infof(ctx, "New board: %v", g.b)
	return g, nil
}

// PlayTurn applies a SAN turn, enforcing every rule as one atomic step. On
// success it returns the resulting game state, which may be terminal:
// besides the checkmate/fifty-move/threefold conditions the turn executor
// itself decides, PlayTurn also promotes Ongoing to the two conditions that
// need the legal-turn enumerator or full board scan to detect: stalemate
// and insufficient mating material.
func (g *Game) PlayTurn(ctx context.Context, san string) (chess.GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := chess.PlayTurn(g.b, san)
	if err != nil {
		logw.Infof(ctx, "PlayTurn %q failed: %v", san, err)
		return chess.GameState{}, err
	}
	g.history = append(g.history, snap)

	g.classifyTerminalState()

	logw.Infof(ctx, "PlayTurn %q: %v", san, g.b)
	return g.b.State(), nil
}

// classifyTerminalState promotes an Ongoing post-turn state to Stalemate or
// DrawInsufficientMatingMaterial, the two terminal conditions PlayTurn
// cannot decide by itself.
func (g *Game) classifyTerminalState() {
	if g.b.State().IsTerminal() {
		return
	}
	if g.b.InsufficientMatingMaterial() {
		g.b.SetState(chess.GameState{Kind: chess.DrawInsufficientMatingMaterial})
		return
	}
	if !chess.HasLegalReply(g.b, g.b.Active()) {
		g.b.SetState(chess.GameState{Kind: chess.Stalemate})
	}
}

// UndoTurn reverses the most recently played turn, including undoing a
// terminal game state so play may continue.
func (g *Game) UndoTurn(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.history) == 0 {
		return chess.ErrUndoNotAvailable
	}

	last := g.history[len(g.history)-1]
	chess.UndoTurn(g.b, last)
	g.history = g.history[:len(g.history)-1]

	logw.Infof(ctx, "UndoTurn %q: %v", last.SAN(), g.b)
	return nil
}

// GameState returns the current game state.
func (g *Game) GameState() chess.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.b.State()
}

// AvailableTurns returns every legal turn for the side to move.
func (g *Game) AvailableTurns() []chess.AvailableTurn {
	g.mu.Lock()
	defer g.mu.Unlock()

	return chess.AvailableTurns(g.b)
}

// Display renders the game per opt: the board itself, or one of the two
// history views kept by this facade.
func (g *Game) Display(opt chess.DisplayOption) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch opt.Kind {
	case chess.TurnHistory:
		return chess.FormatTurnHistory(g.sansLocked())
	case chess.CaptureHistory:
		return chess.FormatCaptureHistory(g.capturesLocked())
	default:
		return chess.FormatBoard(g.b.Map(), opt.Mode)
	}
}

// LastTurn returns the SAN of the most recently played turn, if any.
func (g *Game) LastTurn() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.history) == 0 {
		return "", false
	}
	return g.history[len(g.history)-1].SAN(), true
}

// FullMoves returns the current full-move number: 1 at the start of the
// game, incremented after each Black turn.
func (g *Game) FullMoves() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.history)/2 + 1
}

// HasCastled reports whether side has castled at any point still present in
// history (an undone castling turn no longer counts).
func (g *Game) HasCastled(side chess.Side) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, h := range g.history {
		if moverAt(i) != side {
			continue
		}
		if turn, err := notation.ParseTurn(h.SAN()); err == nil && turn.Castling != nil {
			return true
		}
	}
	return false
}

// moverAt returns who moved at history index i: a new game always starts
// with White to move and turns strictly alternate.
func moverAt(i int) chess.Side {
	if i%2 == 0 {
		return chess.White
	}
	return chess.Black
}

func (g *Game) sansLocked() []string {
	out := make([]string, len(g.history))
	for i, h := range g.history {
		out[i] = h.SAN()
	}
	return out
}

func (g *Game) capturesLocked() []chess.CaptureEntry {
	var out []chess.CaptureEntry
	for i, h := range g.history {
		if p, ok := h.Captured(); ok {
			out = append(out, chess.CaptureEntry{TurnIndex: i, SAN: h.SAN(), Captured: p, By: moverAt(i)})
		}
	}
	return out
}
