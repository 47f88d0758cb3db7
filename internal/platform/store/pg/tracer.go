package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"streamdex/internal/platform/logger"
)

// Tracer logs statements through zerolog; it implements pgx.QueryTracer
type Tracer struct {
	log     logger.Logger
	verbose bool
	slow    time.Duration
}

var _ pgx.QueryTracer = (*Tracer)(nil)

// NewTracer logs every statement when verbose, otherwise only those slower than slow
func NewTracer(root logger.Logger, verbose bool, slow time.Duration) *Tracer {
	return &Tracer{
		log:     root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		verbose: verbose,
		slow:    slow,
	}
}

type traceKey struct{}

type traceStart struct {
	sql  string
	args []any
	at   time.Time
}

var now = time.Now

// TraceQueryStart stashes the statement on the context
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: d.SQL, args: d.Args, at: now()})
}

// TraceQueryEnd logs the statement started on ctx
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := now().Sub(st.at)
	slow := t.slow > 0 && elapsed >= t.slow

	var evt *zerolog.Event
	switch {
	case d.Err != nil:
		evt = t.log.Error().Err(d.Err)
	case slow:
		evt = t.log.Warn()
	case t.verbose:
		evt = t.log.Info()
	default:
		return
	}
	evt.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000.0).
		Bool("slow", slow).
		Str("sql", compact(st.sql)).
		Interface("args", st.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Msg("pg query")
}

// compact folds runs of whitespace into one space
func compact(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space {
				out = append(out, ' ')
				space = true
			}
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
