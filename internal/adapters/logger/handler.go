package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/depsize/internal/ui/output"
	"go.trai.ch/depsize/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one human-readable record per
// call. Multi-line messages, such as formatted error chains, keep their
// continuation lines aligned under the level marker.
//
// Handlers derived through WithAttrs and WithGroup share the writer and its
// lock, so records from concurrent measurements never interleave.
type PrettyHandler struct {
	out   *termenv.Output
	mu    *sync.Mutex
	level slog.Leveler

	// prefix is the dotted group path applied to attributes added later.
	prefix string
	// attrs holds attributes already rendered as key=value.
	attrs []string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, or to stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		mu:    &sync.Mutex{},
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	marker, color := h.decorate(r.Level)

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	parts = append(parts, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, h.prefix, attr)
		return true
	})

	lines := strings.Split(r.Message, "\n")
	if len(parts) > 0 {
		lines[0] += " " + strings.Join(parts, " ")
	}

	indent := ""
	if marker != "" {
		lines[0] = marker + " " + lines[0]
		indent = strings.Repeat(" ", len([]rune(marker))+1)
	}

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 && line != "" {
			line = indent + line
		}
		sb.WriteString(h.out.String(line).Foreground(color).String())
		sb.WriteString("\n")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(sb.String())
	return err
}

// WithAttrs returns a handler that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	next := h.clone()
	for _, attr := range attrs {
		next.attrs = appendAttr(next.attrs, h.prefix, attr)
	}
	return next
}

// WithGroup returns a handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:    h.out,
		mu:     h.mu,
		level:  h.level,
		prefix: h.prefix,
		attrs:  append([]string(nil), h.attrs...),
	}
}

func (h *PrettyHandler) decorate(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, h.out.Color(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, h.out.Color(string(style.Yellow))
	default:
		return "", h.out.Color(string(style.Slate))
	}
}

// appendAttr renders attr under prefix, flattening groups into dotted keys.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}

	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, groupPrefix, a)
		}
		return parts
	}

	return append(parts, prefix+attr.Key+"="+quote(attr.Value.String()))
}

// quote wraps values that would not read back as a single token, such as
// package paths containing spaces.
func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}
