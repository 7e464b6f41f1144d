package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/tag-extractor/models"
	"github.com/dtnitsch/tag-extractor/pkg/db"
	"github.com/dtnitsch/tag-extractor/pkg/source"
	"github.com/dtnitsch/tag-extractor/pkg/tagger"
	"gopkg.in/yaml.v3"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, dir, "fox.txt", "The Quick fox.\nfox FOX!! fox\n")
	stop := writeFile(t, dir, "stop.txt", "The\n")

	opts := Options{
		RunUUID:       "3f2a9c1e-0000-4000-8000-000000000000",
		Sources:       []string{text},
		StopWordsPath: stop,
		OutputPath:    filepath.Join(dir, "out", "tags.txt"),
		ReportPath:    filepath.Join(dir, "out", "report.yaml"),
		Workers:       2,
		DBPath:        filepath.Join(dir, "history.db"),
	}

	report, frequencies, err := Run(context.Background(), testLogger(), opts, &source.Loader{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := tagger.Frequencies{"quick": 1, "fox": 3}
	if !reflect.DeepEqual(frequencies, want) {
		t.Errorf("frequencies = %v, want %v", frequencies, want)
	}
	if report.TotalTags != 4 || report.DistinctTags != 2 {
		t.Errorf("report totals = %d/%d, want 4/2", report.TotalTags, report.DistinctTags)
	}
	if !reflect.DeepEqual(report.TopTags, []string{"fox: 3", "quick: 1"}) {
		t.Errorf("TopTags = %q", report.TopTags)
	}
	if report.StopWords.Source != stop || report.StopWords.Count != 1 {
		t.Errorf("StopWords = %+v", report.StopWords)
	}
	if len(report.Sources) != 1 || report.Sources[0].Lines != 2 || report.Sources[0].Tags != 4 {
		t.Errorf("Sources = %+v", report.Sources)
	}
	if report.Language != nil {
		t.Errorf("Language = %+v, want nil when detection is off", report.Language)
	}

	data, err := os.ReadFile(opts.OutputPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "fox: 3\nquick: 1\n" {
		t.Errorf("output = %q", data)
	}

	raw, err := os.ReadFile(opts.ReportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var saved models.Report
	if err := yaml.Unmarshal(raw, &saved); err != nil {
		t.Fatalf("report is not YAML: %v", err)
	}
	if saved.UUID != opts.RunUUID || saved.RunID == 0 || saved.OutputPath != opts.OutputPath {
		t.Errorf("saved report = %+v", saved)
	}

	database, err := db.Open(opts.DBPath)
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	defer database.Close()
	tags, err := database.GetRunTags(report.RunID, 0)
	if err != nil {
		t.Fatalf("GetRunTags() error = %v", err)
	}
	if len(tags) != 2 || tags[0].Tag != "fox" || tags[0].Count != 3 {
		t.Errorf("recorded tags = %v", tags)
	}
}

func TestRunMultipleSources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "The Quick fox.")
	b := writeFile(t, dir, "b.txt", "fox FOX!! fox")
	c := writeFile(t, dir, "c.txt", "the the the")

	opts := Options{
		Sources:          []string{a, b, c, a},
		BuiltinStopWords: true,
		Workers:          3,
		NoHistory:        true,
		Top:              1,
	}

	report, frequencies, err := Run(context.Background(), testLogger(), opts, &source.Loader{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The duplicate a.txt is read once.
	want := tagger.Frequencies{"quick": 1, "fox": 4}
	if !reflect.DeepEqual(frequencies, want) {
		t.Errorf("frequencies = %v, want %v", frequencies, want)
	}
	if len(report.Sources) != 3 || report.Sources[0].Name != a || report.Sources[2].Name != c {
		t.Errorf("Sources = %+v, want input order", report.Sources)
	}
	if report.Sources[2].Tags != 0 {
		t.Errorf("c.txt tags = %d, want 0", report.Sources[2].Tags)
	}
	if report.StopWords.Source != BuiltinStopWordsName {
		t.Errorf("StopWords.Source = %q", report.StopWords.Source)
	}
	if !reflect.DeepEqual(report.TopTags, []string{"fox: 4"}) {
		t.Errorf("TopTags = %q", report.TopTags)
	}
	if report.RunID != 0 {
		t.Errorf("RunID = %d, want 0 with history off", report.RunID)
	}
}

func TestRunMissingPrerequisites(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, dir, "fox.txt", "fox")
	output := filepath.Join(dir, "tags.txt")

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "no text",
			opts:    Options{Sources: []string{"  "}, BuiltinStopWords: true, OutputPath: output, NoHistory: true},
			wantErr: tagger.ErrMissingText,
		},
		{
			name:    "no stop words",
			opts:    Options{Sources: []string{text}, OutputPath: output, NoHistory: true},
			wantErr: tagger.ErrMissingStopWords,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, frequencies, err := Run(context.Background(), testLogger(), tt.opts, &source.Loader{})
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, tagger.ErrMissingPrerequisite) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if report != nil || frequencies != nil {
				t.Error("Run() produced a result despite missing input")
			}
			if _, err := os.Stat(output); !os.IsNotExist(err) {
				t.Error("output file written despite missing input")
			}
		})
	}
}

func TestRunSourceFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "fox")
	stop := writeFile(t, dir, "stop.txt", "the")
	output := filepath.Join(dir, "tags.txt")

	opts := Options{
		Sources:       []string{good, filepath.Join(dir, "missing.txt")},
		StopWordsPath: stop,
		OutputPath:    output,
		Workers:       2,
		NoHistory:     true,
	}

	_, frequencies, err := Run(context.Background(), testLogger(), opts, &source.Loader{})
	if !errors.Is(err, source.ErrSourceRead) {
		t.Fatalf("Run() error = %v, want ErrSourceRead", err)
	}
	if frequencies != nil {
		t.Errorf("frequencies = %v, want nil", frequencies)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("output file written after a source failed")
	}

	opts.Sources = []string{good}
	opts.StopWordsPath = filepath.Join(dir, "no-stop.txt")
	if _, _, err := Run(context.Background(), testLogger(), opts, &source.Loader{}); !errors.Is(err, source.ErrSourceRead) {
		t.Errorf("Run() with unreadable stop words error = %v, want ErrSourceRead", err)
	}
}

func TestRunEmptyResultSkipsOutput(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, dir, "a.txt", "a a a")
	stop := writeFile(t, dir, "stop.txt", "a")
	output := filepath.Join(dir, "tags.txt")

	opts := Options{Sources: []string{text}, StopWordsPath: stop, OutputPath: output, NoHistory: true}
	report, frequencies, err := Run(context.Background(), testLogger(), opts, &source.Loader{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(frequencies) != 0 || report.DistinctTags != 0 {
		t.Errorf("frequencies = %v, want empty", frequencies)
	}
	if report.OutputPath != "" {
		t.Errorf("OutputPath = %q, want empty", report.OutputPath)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("empty result was written")
	}
}

func TestRender(t *testing.T) {
	frequencies := tagger.Frequencies{"fox": 3, "quick": 1, "dog": 2}
	report := &models.Report{UUID: "abc", TotalTags: 6, DistinctTags: 3}

	var buf bytes.Buffer
	if err := Render(&buf, FormatText, report, frequencies, 2); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := buf.String(), "fox: 3\ndog: 2\n"; got != want {
		t.Errorf("Render(text) = %q, want %q", got, want)
	}

	buf.Reset()
	if err := Render(&buf, FormatJSON, report, frequencies, 0); err != nil {
		t.Fatalf("Render(json) error = %v", err)
	}
	if !strings.Contains(buf.String(), `"uuid": "abc"`) {
		t.Errorf("Render(json) = %s", buf.String())
	}

	buf.Reset()
	if err := Render(&buf, FormatYAML, report, frequencies, 0); err != nil {
		t.Fatalf("Render(yaml) error = %v", err)
	}
	if !strings.Contains(buf.String(), "uuid: abc") {
		t.Errorf("Render(yaml) = %s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]string{"": FormatText, "TEXT": FormatText, "yml": FormatYAML, "json": FormatJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) error = nil")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	got := defaultOutputPath("results", "3f2a9c1e-aaaa-bbbb", now)
	if want := filepath.Join("results", "tags-2026-10-18-3f2a9c1e.txt"); got != want {
		t.Errorf("defaultOutputPath() = %q, want %q", got, want)
	}
}
