package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestForGame(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	l := ForGame("g-123")
	l.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"gameId":"g-123"`) {
		t.Errorf("expected gameId field in output, got %s", out)
	}
}

func TestForGame_EmptyID(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	l := ForGame("")
	l.Info().Msg("hello")

	out := buf.String()
	if strings.Contains(out, "gameId") {
		t.Errorf("expected no gameId field for empty id, got %s", out)
	}
}
