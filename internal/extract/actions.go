package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/tag-extractor/models"
	"github.com/dtnitsch/tag-extractor/pkg/caching"
	"github.com/dtnitsch/tag-extractor/pkg/source"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func ExtractAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	opts, err := resolveOptions(c, cfg)
	if err != nil {
		return err
	}

	var cache *caching.Cache
	for _, name := range opts.Sources {
		if source.IsURL(name) {
			cache, err = caching.NewCache(opts.CacheDir, opts.MaxAge)
			if err != nil {
				logger.Warn("Page cache disabled", "error", err)
			}
			break
		}
	}
	loader := source.NewLoader(cache, logger)

	report, frequencies, err := Run(c.Context, logger, opts, loader)
	if err != nil {
		return err
	}

	return Render(c.App.Writer, format, report, frequencies, opts.Top)
}

// resolveOptions layers flags over the config file.
func resolveOptions(c *cli.Context, cfg *models.Config) (Options, error) {
	maxAge, err := cfg.Cache.MaxAgeDuration()
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		RunUUID:          uuid.NewString(),
		Sources:          append(c.StringSlice("text"), c.Args().Slice()...),
		StopWordsPath:    cfg.StopWords,
		BuiltinStopWords: cfg.BuiltinStopWords,
		Top:              cfg.Top,
		KeepEmpty:        cfg.KeepEmpty,
		Workers:          cfg.Workers,
		DetectLanguage:   !c.Bool("no-language"),
		NoHistory:        cfg.NoHistory,
		DBPath:           cfg.DBPath,
		CacheDir:         cfg.Cache.Dir,
		MaxAge:           maxAge,
		OutputPath:       c.String("output"),
		ReportPath:       c.String("report"),
	}

	if c.IsSet("stopwords") {
		opts.StopWordsPath = c.String("stopwords")
	}
	if c.IsSet("builtin-stopwords") {
		opts.BuiltinStopWords = c.Bool("builtin-stopwords")
	}
	if c.IsSet("top") {
		opts.Top = c.Int("top")
	}
	if c.IsSet("keep-empty") {
		opts.KeepEmpty = c.Bool("keep-empty")
	}
	if c.IsSet("workers") {
		opts.Workers = c.Int("workers")
	}
	if c.IsSet("no-history") {
		opts.NoHistory = c.Bool("no-history")
	}
	if c.IsSet("cache-dir") {
		opts.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("max-age") {
		if opts.MaxAge, err = time.ParseDuration(c.String("max-age")); err != nil {
			return Options{}, fmt.Errorf("invalid max-age duration: %w", err)
		}
	}
	if c.String("db") != "" {
		opts.DBPath = c.String("db")
	}

	if opts.OutputPath == "" && c.Bool("save") {
		opts.OutputPath = defaultOutputPath(cfg.OutputDir, opts.RunUUID, time.Now())
	}
	if opts.Top < 0 {
		return Options{}, fmt.Errorf("top must not be negative, got %d", opts.Top)
	}

	return opts, nil
}

// defaultOutputPath names the tag file written by --save.
func defaultOutputPath(dir, runUUID string, now time.Time) string {
	short := runUUID
	if len(short) > 8 {
		short = short[:8]
	}
	return filepath.Join(dir, fmt.Sprintf("tags-%s-%s.txt", now.Format("2006-01-02"), short))
}
