package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-recolor-mcp/internal/history"
	"github.com/ironsheep/image-recolor-mcp/internal/imaging"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel     = "RECOLOR_MCP_LOG_LEVEL"
	EnvMaxWidth     = "RECOLOR_MCP_MAX_WIDTH"
	EnvUndoDepth    = "RECOLOR_MCP_UNDO_DEPTH"
	EnvUndoCompress = "RECOLOR_MCP_UNDO_COMPRESS"
)

// Config holds the server settings.
type Config struct {
	// Debug enables per-call logging on stderr.
	Debug bool

	// MaxDisplayWidth is the width above which loaded images are
	// downscaled. Zero disables downscaling.
	MaxDisplayWidth int

	// UndoDepth bounds the undo history. Zero means unbounded.
	UndoDepth int

	// CompressUndo keeps undo snapshots zstd-compressed.
	CompressUndo bool
}

// DefaultConfig returns the settings used when no environment variable is set.
func DefaultConfig() Config {
	return Config{
		MaxDisplayWidth: imaging.DefaultMaxDisplayWidth,
		UndoDepth:       history.DefaultMaxDepth,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the RECOLOR_MCP_*
// environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.Debug = strings.EqualFold(os.Getenv(EnvLogLevel), "debug")

	if v, ok := os.LookupEnv(EnvMaxWidth); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s must be a non-negative integer, got %q", EnvMaxWidth, v)
		}
		cfg.MaxDisplayWidth = n
	}

	if v, ok := os.LookupEnv(EnvUndoDepth); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s must be a non-negative integer, got %q", EnvUndoDepth, v)
		}
		cfg.UndoDepth = n
	}

	if v, ok := os.LookupEnv(EnvUndoCompress); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s must be a boolean, got %q", EnvUndoCompress, v)
		}
		cfg.CompressUndo = b
	}

	return cfg, nil
}

func (c Config) historyOptions() history.Options {
	return history.Options{MaxDepth: c.UndoDepth, Compress: c.CompressUndo}
}
