package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"daygrid/internal/config"
	"daygrid/internal/store"
	"daygrid/internal/web"

	"golang.org/x/term"
)

func main() {
	slog.SetDefault(slog.New(newLogHandler(os.Stdout)))

	cfg := config.Load()
	version := strings.TrimSpace(web.BuildVersion)
	if version == "" {
		version = "dev"
	}
	slog.Info("startup", "build_version", version)
	if cfg.DataPath == "" {
		slog.Error("DAYGRID_DATA_PATH is required")
		os.Exit(1)
	}
	dataPath, err := filepath.Abs(cfg.DataPath)
	if err != nil {
		slog.Error("resolve data path", "err", err)
		os.Exit(1)
	}
	cfg.DataPath = dataPath
	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		slog.Error("create data dir", "err", err)
		os.Exit(1)
	}

	lock, err := store.LockDir(cfg.DataPath, 5*time.Second)
	if err != nil {
		slog.Error("lock data dir", "path", cfg.DataPath, "err", err)
		os.Exit(1)
	}
	defer lock.Release()

	blobs, err := openBlobs(cfg)
	if err != nil {
		slog.Error("open store", "backend", cfg.Store, "err", err)
		os.Exit(1)
	}
	st := store.New(blobs)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	doc := st.Load(ctx)
	cancel()

	srv, err := web.NewServer(cfg, st, doc)
	if err != nil {
		slog.Error("auth init", "err", err)
		os.Exit(1)
	}
	slog.Info("listening", "addr", cfg.ListenAddr, "store", cfg.Store)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func openBlobs(cfg config.Config) (store.Blobs, error) {
	switch cfg.Store {
	case config.StoreDiskv:
		return store.OpenDiskv(filepath.Join(cfg.DataPath, "blobs"))
	default:
		return store.OpenSQLite(filepath.Join(cfg.DataPath, "daygrid.sqlite"))
	}
}

// newLogHandler picks the console format: JSON by default, a compact
// colorized line handler when DAYGRID_LOG_PRETTY is set.
func newLogHandler(w io.Writer) slog.Handler {
	level := logLevel(os.Getenv("DAYGRID_DEBUG_LEVEL"))
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DAYGRID_LOG_PRETTY"))) {
	case "1", "true", "yes", "on":
		return &consoleHandler{w: w, level: level, color: terminalWriter(w)}
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func logLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// consoleHandler writes one line per record: time, level, message, then
// key=value attrs with dotted group prefixes.
type consoleHandler struct {
	w     io.Writer
	level slog.Level
	color bool
	attrs []slog.Attr
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", r.Time.Format("15:04:05.000"), h.label(r.Level), r.Message)
	for _, a := range h.attrs {
		h.appendAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, a)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) appendAttr(b *strings.Builder, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := *h
		sub.group = key
		for _, child := range a.Value.Group() {
			sub.appendAttr(b, child)
		}
		return
	}
	fmt.Fprintf(b, " %s=%s", key, a.Value)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.group == "" {
		next.group = name
	} else {
		next.group += "." + name
	}
	return &next
}

func (h *consoleHandler) label(lvl slog.Level) string {
	s := lvl.String()
	if !h.color {
		return s
	}
	var c string
	switch {
	case lvl >= slog.LevelError:
		c = "\x1b[31m"
	case lvl >= slog.LevelWarn:
		c = "\x1b[33m"
	case lvl >= slog.LevelInfo:
		c = "\x1b[32m"
	default:
		c = "\x1b[36m"
	}
	return c + s + "\x1b[0m"
}

func terminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
