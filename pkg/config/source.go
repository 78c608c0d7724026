package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skylark-qa/skylark/internal/helper"
)

const (
	fileSource = "FILE"
	httpSource = "HTTP"
)

// Source reads the persisted record of a named environment. A record is a raw
// field-name to value mapping exactly as found in the origin; missing fields
// are simply absent, defaulting happens in the merge. Sources never cache,
// that is the job of the Store one layer up.
type Source interface {
	Load(ctx context.Context, name string) (map[string]any, error)
}

// SourceConfig selects and configures the backend environment records are
// loaded from.
type SourceConfig struct {
	Type string
	File FileSourceConfig
	Http HttpSourceConfig
}

// FileSourceConfig is the configuration for the file backend.
type FileSourceConfig struct {
	Dir string
}

// HttpSourceConfig is the configuration for the http backend.
type HttpSourceConfig struct {
	Url      string
	Token    string
	Timeout  time.Duration
	RetryCfg helper.RetryConfig
}

// NewSource creates the source for the given configuration. The file backend
// is the fallback.
func NewSource(cfg SourceConfig) (Source, error) {
	switch strings.ToUpper(cfg.Type) {
	case httpSource:
		return NewHttpSource(cfg.Http), nil
	case fileSource, "":
		return NewFileSource(cfg.File), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}
