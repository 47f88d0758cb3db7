// Package logger owns the process root zerolog logger and its request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"streamdex/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging type handed around the codebase
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	Format  string // console or json
	Service string
	Writer  io.Writer

	// File mirrors every line as json into a size rotated file
	File        string
	FileMaxMB   int
	FileBackups int
}

// FromEnv reads LOG_*; it goes through raw because config itself logs
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.Get("LEVEL", "debug"),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", ""),
		File:        rc.Get("FILE", ""),
		FileMaxMB:   rc.GetInt("FILE_MAX_MB", 50),
		FileBackups: rc.GetInt("FILE_BACKUPS", 3),
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Init installs the root logger; only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, initializing it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) zerolog.Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	if opt.File != "" {
		w = zerolog.MultiLevelWriter(w, &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    max(opt.FileMaxMB, 1),
			MaxBackups: max(opt.FileBackups, 0),
			Compress:   true,
		})
	}

	c := zerolog.New(w).Level(level(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	return c.Logger()
}

// level parses s, falling back to debug for blanks and typos
func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || l == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return l
}

type requestKey struct{}

type requestFields struct{ id, client string }

// WithRequest stores the request id and client address for C
func WithRequest(ctx context.Context, reqID, client string) context.Context {
	if reqID == "" && client == "" {
		return ctx
	}
	return context.WithValue(ctx, requestKey{}, requestFields{id: reqID, client: client})
}

// C returns a root child carrying whatever WithRequest stored in ctx
func C(ctx context.Context) *Logger {
	f, _ := ctx.Value(requestKey{}).(requestFields)
	c := Get().With()
	if f.id != "" {
		c = c.Str("request_id", f.id)
	}
	if f.client != "" {
		c = c.Str("client", f.client)
	}
	l := c.Logger()
	return &l
}

// Named returns a root child tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
