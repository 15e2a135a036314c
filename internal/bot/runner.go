package bot

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/freeeve/mutual-annihilation/internal/logger"
	"github.com/freeeve/mutual-annihilation/internal/model"
)

// Recorder persists one decided turn. Implemented by the redis repository;
// a nil Recorder disables recording.
type Recorder interface {
	RecordTurn(ctx context.Context, gameID string, state, turn json.RawMessage) (int64, error)
}

// Runner drives a strategy over the line protocol: one GameState JSON
// object per input line, one Turn JSON object per output line.
type Runner struct {
	strategy Strategy
	in       io.Reader
	out      io.Writer
	recorder Recorder
	gameID   string
}

// NewRunner creates a runner for the given strategy and streams. Each
// runner gets a fresh game id for log correlation and turn recording.
func NewRunner(strategy Strategy, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		strategy: strategy,
		in:       in,
		out:      out,
		gameID:   uuid.NewString(),
	}
}

// WithRecorder attaches a turn recorder.
func (r *Runner) WithRecorder(rec Recorder) *Runner {
	r.recorder = rec
	return r
}

// GameID returns the id under which this run's turns are recorded.
func (r *Runner) GameID() string { return r.gameID }

// Run processes game states until input ends or the context is cancelled.
// A malformed input line or a strategy failure is fatal: the protocol gives
// no way to recover mid-game from a snapshot we cannot answer.
func (r *Runner) Run(ctx context.Context) error {
	lg := logger.ForGame(r.gameID)
	lg.Info().Str("strategy", r.strategy.Name()).Msg("Starting game loop")

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	turnNum := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		turnNum++

		line := scanner.Bytes()
		var gs model.GameState
		if err := json.Unmarshal(line, &gs); err != nil {
			return fmt.Errorf("turn %d: decode game state: %w", turnNum, err)
		}

		start := time.Now()
		turn, err := r.strategy.NextTurn(&gs)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turnNum, err)
		}

		out, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("turn %d: encode turn: %w", turnNum, err)
		}
		if _, err := fmt.Fprintf(r.out, "%s\n", out); err != nil {
			return fmt.Errorf("turn %d: write turn: %w", turnNum, err)
		}

		lg.Info().
			Int("turn", turnNum).
			Int("planets", len(gs.Planets)).
			Int("expeditions", len(gs.Expeditions)).
			Int("moves", len(turn.Moves)).
			Dur("took", time.Since(start)).
			Msg("Turn decided")

		if r.recorder != nil {
			stateCopy := json.RawMessage(append([]byte(nil), line...))
			if _, err := r.recorder.RecordTurn(ctx, r.gameID, stateCopy, out); err != nil {
				lg.Warn().Err(err).Int("turn", turnNum).Msg("Turn recording failed, continuing")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read game state: %w", err)
	}

	lg.Info().Int("turns", turnNum).Msg("Input closed, game loop done")
	return nil
}
