// Command ftplist parses FTP LIST output.
//
// Usage:
//
//	ftplist [parse] [flags] [file...]   parse files (or stdin) and print entries
//	ftplist serve [flags]               serve the parsing API over HTTP
//	ftplist watch [flags] file...       print entries again whenever a file changes
//
// Run "ftplist <command> -h" for the flags of a command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gonzalop/ftplist/internal/config"
	"github.com/gonzalop/ftplist/internal/httpapi"
	"github.com/gonzalop/ftplist/internal/render"
	"github.com/gonzalop/ftplist/internal/scan"
	"github.com/gonzalop/ftplist/internal/watcher"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := "parse"
	if len(args) > 0 {
		switch args[0] {
		case "parse", "serve", "watch":
			cmd, args = args[0], args[1:]
		case "help":
			fmt.Fprintln(stderr, "usage: ftplist [parse|serve|watch] [flags] [file...]")
			return exitOK
		}
	}

	cfg, rest, err := config.Load(cmd, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "ftplist: %v\n", err)
		if errors.Is(err, config.ErrUsage) {
			return exitUsage
		}
		return exitError
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if path := cfg.ConfigFilePath(); path != "" {
		logger.Debug("Loaded configuration", "file", path)
	}

	parser, err := cfg.NewParser(logger)
	if err != nil {
		fmt.Fprintf(stderr, "ftplist: %v\n", err)
		return exitUsage
	}

	switch cmd {
	case "serve":
		if len(rest) > 0 {
			fmt.Fprintf(stderr, "ftplist: serve takes no arguments\n")
			return exitUsage
		}
		return runServe(ctx, cfg, parser, logger)
	case "watch":
		if len(rest) == 0 {
			fmt.Fprintf(stderr, "ftplist: watch needs at least one file\n")
			return exitUsage
		}
		if slices.Contains(rest, "-") {
			fmt.Fprintf(stderr, "ftplist: watch cannot read stdin\n")
			return exitUsage
		}
		return runWatch(ctx, cfg, parser, rest, stdout, logger)
	default:
		return runParse(ctx, cfg, parser, rest, stdin, stdout, logger)
	}
}

func runParse(ctx context.Context, cfg *config.Config, p scan.Parser, files []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) int {
	w, err := render.NewWriter(cfg.Output, stdout)
	if err != nil {
		logger.Error("Invalid output", "error", err)
		return exitUsage
	}
	if len(files) == 0 {
		files = []string{"-"}
	}

	var unparsed int
	for _, name := range files {
		sum, err := renderFile(ctx, name, stdin, p, w, logger)
		if err != nil {
			logger.Error("Failed to parse listing", "file", name, "error", err)
			return exitError
		}
		unparsed += sum.Unparsed
	}
	if err := w.Flush(); err != nil {
		logger.Error("Failed to write output", "error", err)
		return exitError
	}

	if cfg.Strict && unparsed > 0 {
		logger.Error("Listing contains unparseable lines", "count", unparsed)
		return exitError
	}
	return exitOK
}

// renderFile parses one listing, "-" meaning stdin, and writes its entries to w.
func renderFile(ctx context.Context, name string, stdin io.Reader, p scan.Parser, w render.Writer, logger *slog.Logger) (scan.Summary, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return scan.Summary{}, err
		}
		defer f.Close()
		r = f
	}

	sum, err := scan.Scan(ctx, r, p, func(res scan.Result) error {
		if res.Err != nil {
			logger.Warn("Skipping unparseable line", "file", name, "line", res.LineNo, "raw", res.Raw)
			return nil
		}
		return w.Write(render.NewRecord(res.Entry))
	})
	if err != nil {
		return sum, err
	}
	logger.Debug("Parsed listing", "file", name, "lines", sum.Lines, "unix", sum.Unix, "msdos", sum.Msdos, "unparsed", sum.Unparsed)
	return sum, nil
}

func runServe(ctx context.Context, cfg *config.Config, p scan.Parser, logger *slog.Logger) int {
	counters := &httpapi.Counters{}
	h, err := httpapi.NewHandler(p,
		httpapi.WithLogger(logger),
		httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
		httpapi.WithRateLimit(cfg.RateLimit),
		httpapi.WithMetrics(counters),
	)
	if err != nil {
		logger.Error("Invalid server settings", "error", err)
		return exitUsage
	}

	gin.SetMode(gin.ReleaseMode)
	err = httpapi.Serve(ctx, cfg.Listen, httpapi.NewRouter(h), logger)
	stats := counters.Snapshot()
	logger.Info("Request totals",
		"requests", stats.Requests,
		"rejected", stats.Rejected,
		"lines", stats.Lines,
		"parsed", stats.Parsed,
		"unparsed", stats.Unparsed)
	if err != nil {
		logger.Error("Server failed", "error", err)
		return exitError
	}
	return exitOK
}

func runWatch(ctx context.Context, cfg *config.Config, p scan.Parser, files []string, stdout io.Writer, logger *slog.Logger) int {
	var mu sync.Mutex
	show := func(name string) {
		mu.Lock()
		defer mu.Unlock()

		w, err := render.NewWriter(cfg.Output, stdout)
		if err != nil {
			logger.Error("Invalid output", "error", err)
			return
		}
		if _, err := renderFile(ctx, name, nil, p, w, logger); err != nil {
			logger.Error("Failed to parse listing", "file", name, "error", err)
			return
		}
		if err := w.Flush(); err != nil {
			logger.Error("Failed to write output", "error", err)
		}
	}

	for _, name := range files {
		show(name)
	}

	wt, err := watcher.New(files, logger)
	if err != nil {
		logger.Error("Failed to create file watcher", "error", err)
		return exitError
	}
	defer func() { _ = wt.Stop() }()

	wt.OnChange(func(e watcher.Event) {
		show(e.Path)
	})
	if err := wt.Start(); err != nil {
		logger.Error("Failed to start file watcher", "error", err)
		return exitError
	}
	logger.Info("Watching listings", "files", len(files))

	<-ctx.Done()
	return exitOK
}
