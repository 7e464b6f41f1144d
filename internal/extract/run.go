package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/tag-extractor/internal/common"
	"github.com/dtnitsch/tag-extractor/models"
	"github.com/dtnitsch/tag-extractor/pkg/db"
	"github.com/dtnitsch/tag-extractor/pkg/detector"
	"github.com/dtnitsch/tag-extractor/pkg/session"
	"github.com/dtnitsch/tag-extractor/pkg/source"
	"github.com/dtnitsch/tag-extractor/pkg/storage"
	"github.com/dtnitsch/tag-extractor/pkg/tagger"
)

// Run performs one extraction: load stop words and sources, count tags,
// write the optional output and report files and record the run.
// Nothing is written unless every source loaded and extraction succeeded.
func Run(ctx context.Context, logger *slog.Logger, opts Options, loader *source.Loader) (*models.Report, tagger.Frequencies, error) {
	names := common.SanitizeSources(opts.Sources)
	if len(names) == 0 {
		return nil, nil, tagger.ErrMissingText
	}
	if opts.StopWordsPath == "" && !opts.BuiltinStopWords {
		return nil, nil, tagger.ErrMissingStopWords
	}

	var tagOpts []tagger.Option
	if opts.KeepEmpty {
		tagOpts = append(tagOpts, tagger.WithEmptyTags())
	}
	s := session.New(tagOpts...)

	if opts.StopWordsPath != "" {
		lines, err := source.ReadFileLines(opts.StopWordsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load stop words: %w", err)
		}
		s.LoadStopWords(opts.StopWordsPath, lines)
	} else {
		s.LoadStopWords(BuiltinStopWordsName, tagger.EnglishStopWords())
	}
	logger.Info("Loaded stop words", "source", s.StopWordsName(), "count", s.StopWords().Len())

	logger.Info("Loading sources", "count", len(names), "workers", opts.Workers)
	texts, err := loadSources(ctx, logger, loader, names, opts.Workers)
	if err != nil {
		return nil, nil, err
	}
	for _, text := range texts {
		s.AddText(text.Name, text.Lines)
	}

	frequencies, err := s.Extract()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Extracted tags", "distinct", len(frequencies), "total", tagger.Total(frequencies))

	report := buildReport(opts, s, texts, frequencies)

	if opts.DetectLanguage {
		var all []string
		for _, text := range texts {
			all = append(all, text.Lines...)
		}
		lang := detector.New().Detect(all)
		report.Language = &models.LanguageInfo{Name: lang.Name, ISO: lang.ISO, Confidence: lang.Confidence}
	}

	store := &storage.Storage{}
	if opts.OutputPath != "" {
		if store.HasFile(opts.OutputPath) {
			logger.Warn("Overwriting existing output file", "output", opts.OutputPath)
		}
		err := s.Save(store, opts.OutputPath)
		switch {
		case errors.Is(err, session.ErrNothingToSave):
			logger.Warn("No tags to save", "output", opts.OutputPath)
		case err != nil:
			return nil, nil, err
		default:
			report.OutputPath = opts.OutputPath
			logSaved(logger, store, "Tags saved", opts.OutputPath)
		}
	}

	if !opts.NoHistory {
		report.RunID = recordRun(logger, opts.DBPath, report, frequencies)
	}

	if opts.ReportPath != "" {
		if err := saveReport(store, opts.ReportPath, report); err != nil {
			return nil, nil, err
		}
		logSaved(logger, store, "Report saved", opts.ReportPath)
	}

	return report, frequencies, nil
}

func logSaved(logger *slog.Logger, store *storage.Storage, msg, path string) {
	stats, err := store.GetFileStats(path)
	if err != nil {
		logger.Info(msg, "path", path)
		return
	}
	logger.Info(msg, "path", path, "bytes", stats.SizeBytes)
}

func buildReport(opts Options, s *session.Session, texts []*source.Text, frequencies tagger.Frequencies) *models.Report {
	totals := s.TextTotals()
	sources := make([]models.SourceSummary, len(texts))
	for i, text := range texts {
		sources[i] = models.SourceSummary{
			Name:      text.Name,
			Kind:      string(text.Kind),
			Hash:      text.Hash,
			Lines:     len(text.Lines),
			SizeBytes: text.Bytes,
			Tags:      totals[i],
		}
	}

	sorted := tagger.Sorted(frequencies)
	tags := make([]models.TagEntry, len(sorted))
	for i, tc := range sorted {
		tags[i] = models.TagEntry{Tag: tc.Tag, Count: tc.Count}
	}

	top := tagger.Top(frequencies, opts.Top)
	topTags := make([]string, len(top))
	for i, tc := range top {
		topTags[i] = tc.String()
	}

	return &models.Report{
		UUID:        opts.RunUUID,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Sources:     sources,
		StopWords: models.StopWordsInfo{
			Source: s.StopWordsName(),
			Count:  s.StopWords().Len(),
		},
		KeepEmpty:    opts.KeepEmpty,
		TotalTags:    tagger.Total(frequencies),
		DistinctTags: len(frequencies),
		TopTags:      topTags,
		Tags:         tags,
	}
}

// recordRun stores the run in the history database. Failures are logged and
// reported as run ID 0; history never fails an extraction.
func recordRun(logger *slog.Logger, dbPath string, report *models.Report, frequencies tagger.Frequencies) int64 {
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Warn("Failed to open run history", "error", err)
		return 0
	}
	defer database.Close()

	rec := db.RunRecord{
		Run: db.Run{
			UUID:            report.UUID,
			StopWordsSource: report.StopWords.Source,
			StopWordCount:   report.StopWords.Count,
			KeepEmpty:       report.KeepEmpty,
			TokenCount:      report.TotalTags,
			TagCount:        report.DistinctTags,
			OutputPath:      report.OutputPath,
		},
		Tags: frequencies,
	}
	if report.Language != nil {
		rec.Language = report.Language.Name
		rec.LanguageConfidence = report.Language.Confidence
	}
	for _, src := range report.Sources {
		rec.Sources = append(rec.Sources, db.RunSource{
			Name:        src.Name,
			Kind:        src.Kind,
			ContentHash: src.Hash,
			LineCount:   src.Lines,
			SizeBytes:   src.SizeBytes,
		})
	}

	runID, err := database.InsertRun(rec)
	if err != nil {
		logger.Warn("Failed to record run", "error", err, "db", database.Path())
		return 0
	}
	logger.Info("Run recorded", "run_id", runID, "db", database.Path())
	return runID
}
