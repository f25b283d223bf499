package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

const jsonTimeLayout = "2006-01-02T15:04:05.000Z07:00"

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: jsonAttr,
	})
}

// jsonAttr writes UTC millisecond timestamps under "ts", lower-case levels,
// base-name sources and durations as fractional seconds.
func jsonAttr(_ []string, attr slog.Attr) slog.Attr {
	v := attr.Value
	switch {
	case attr.Key == slog.TimeKey && v.Kind() == slog.KindTime:
		return slog.String("ts", v.Time().UTC().Format(jsonTimeLayout))
	case attr.Key == slog.LevelKey:
		return slog.String(slog.LevelKey, strings.ToLower(v.String()))
	case attr.Key == slog.SourceKey:
		if src, ok := v.Any().(*slog.Source); ok && src != nil {
			return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	case v.Kind() == slog.KindDuration:
		return slog.Float64(attr.Key, v.Duration().Seconds())
	}
	return attr
}
