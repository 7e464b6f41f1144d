package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/tag-extractor/models"
	"github.com/dtnitsch/tag-extractor/pkg/storage"
	"github.com/dtnitsch/tag-extractor/pkg/tagger"
	"gopkg.in/yaml.v3"
)

// Output formats for stdout and report files.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (use: text, yaml or json)", s)
	}
}

func marshalReport(report *models.Report, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return append(data, '\n'), nil
	default:
		var b strings.Builder
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return []byte(b.String()), nil
	}
}

// saveReport writes the report as JSON when path ends in .json, YAML otherwise.
func saveReport(store *storage.Storage, path string, report *models.Report) error {
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	data, err := marshalReport(report, format)
	if err != nil {
		return err
	}
	return store.SaveFile(path, data)
}

// Render prints the result. Text output is one "word: count" line per tag,
// limited to top entries when top > 0.
func Render(w io.Writer, format string, report *models.Report, frequencies tagger.Frequencies, top int) error {
	if format != FormatText {
		data, err := marshalReport(report, format)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	for _, tc := range tagger.Top(frequencies, top) {
		if _, err := fmt.Fprintln(w, tc.String()); err != nil {
			return err
		}
	}
	return nil
}
