package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gulcinmobile/newsengine/internal/app"
	"github.com/gulcinmobile/newsengine/internal/config"
	"github.com/gulcinmobile/newsengine/internal/logger"
	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/gulcinmobile/newsengine/internal/translate"
)

const usage = `usage:
  newsengine fetch <category> [-lang xx] [-format json|text]
  newsengine serve

categories: tech, general, ai, political, sports, business, art, entertainment
`

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, ".env file not loaded: %v (using environment variables only)\n", err)
	}
	logger.InitWriter(os.Stderr, logger.LevelFromEnv())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "fetch":
		return runFetch(ctx, args[1:], stdout, stderr)
	case "serve":
		return runServe(ctx, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

type fetchOptions struct {
	category news.Category
	lang     string
	format   string
}

func parseFetchArgs(args []string, stderr io.Writer) (fetchOptions, error) {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lang := fs.String("lang", "", "target language (en, tr, fr, es, de); default is the saved setting")
	format := fs.String("format", "json", "output format: json or text")

	if err := fs.Parse(args); err != nil {
		return fetchOptions{}, err
	}
	if fs.NArg() == 0 {
		return fetchOptions{}, fmt.Errorf("missing category")
	}
	cat, err := news.ParseCategory(fs.Arg(0))
	if err != nil {
		return fetchOptions{}, err
	}
	// flags may also follow the category
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return fetchOptions{}, err
	}
	if fs.NArg() > 0 {
		return fetchOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *lang != "" && !translate.Supported(*lang) {
		return fetchOptions{}, fmt.Errorf("unsupported language %q", *lang)
	}
	if *format != "json" && *format != "text" {
		return fetchOptions{}, fmt.Errorf("unknown format %q", *format)
	}
	return fetchOptions{category: cat, lang: *lang, format: *format}, nil
}

func runFetch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFetchArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n%s", err, usage)
		return 2
	}

	a, code := newApp(ctx)
	if a == nil {
		return code
	}
	defer a.Close()

	list := a.Fetch(ctx, opts.category, opts.lang)
	if opts.format == "text" {
		fmt.Fprint(stdout, app.FormatText(opts.category, list, 0))
		return 0
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		logger.Error("write output", slog.Any("err", err))
		return 1
	}
	return 0
}

func runServe(ctx context.Context, stderr io.Writer) int {
	a, code := newApp(ctx)
	if a == nil {
		return code
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		logger.Error("serve", slog.Any("err", err))
		return 1
	}
	return 0
}

func newApp(ctx context.Context) (*app.App, int) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.Any("err", err))
		return nil, 1
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("init app", slog.Any("err", err))
		return nil, 1
	}
	return a, 0
}
