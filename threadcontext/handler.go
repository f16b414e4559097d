package threadcontext

import (
	"context"
	"log/slog"
	"time"

	slogcontext "github.com/veqryn/slog-context"
)

// NewHandler wraps next so that every record logged with a context gets the
// diagnostic map of that context appended as attributes.
func NewHandler(next slog.Handler) slog.Handler {
	return slogcontext.NewHandler(next, &slogcontext.HandlerOptions{
		Prependers: []slogcontext.AttrExtractor{
			slogcontext.ExtractPrepended,
		},
		Appenders: []slogcontext.AttrExtractor{
			slogcontext.ExtractAppended,
			ExtractAttrs,
		},
	})
}

// ExtractAttrs converts the diagnostic map of ctx to slog attributes in key
// order. It matches slogcontext.AttrExtractor.
func ExtractAttrs(ctx context.Context, _ time.Time, _ slog.Level, _ string) []slog.Attr {
	m := Map(ctx)
	if m.IsEmpty() {
		return nil
	}
	attrs := make([]slog.Attr, 0, m.Size())
	m.ForEach(func(key string, value any) {
		attrs = append(attrs, slog.Any(key, value))
	})
	return attrs
}
