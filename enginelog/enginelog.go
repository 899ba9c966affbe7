// Package enginelog is the engine's structured-logging seam: a thin
// wrapper over zerolog so Controller/CalcEngine/xlsxio can log without
// depending directly on a logging library's setup conventions.
//
// Grounded on github.com/rs/zerolog (present in the retrieved pack's
// other_examples/manifests go.mod files, e.g. gsoultan-Hermod's), used
// via its standard idiomatic setup since none of those manifests ships
// the Go source that would show a project-specific wiring pattern to
// imitate instead.
package enginelog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the engine-wide structured logger, carrying a "component"
// field so log lines from Controller, CalcEngine, and xlsxio are easy to
// tell apart in aggregate output.
type Logger struct {
	zerolog.Logger
}

// New builds a Logger writing to w at level, with component attached to
// every line it emits.
func New(w io.Writer, component string, level zerolog.Level) Logger {
	base := zerolog.New(w).With().Timestamp().Str("component", component).Logger().Level(level)
	return Logger{Logger: base}
}

// Default builds a Logger writing to stderr at info level, with no
// configuration needed.
func Default(component string) Logger {
	return New(os.Stderr, component, zerolog.InfoLevel)
}

// FromLevelName builds a Logger writing to stderr at the level named by
// levelName (as engineconfig.LoggingConfig.Level stores it), falling
// back to info for an empty or unrecognized name.
func FromLevelName(component, levelName string) Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil || levelName == "" {
		level = zerolog.InfoLevel
	}
	return New(os.Stderr, component, level)
}

// WithSheet returns a child Logger carrying sheet as a structured field,
// for log lines scoped to one sheet's payload application.
func (l Logger) WithSheet(sheet uint32) Logger {
	return Logger{Logger: l.Logger.With().Uint32("sheet", sheet).Logger()}
}
