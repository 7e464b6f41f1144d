// Package source turns the names a user passes on the command line into
// fully materialized text lines: local text files, HTML files, http(s)
// URLs and stdin.
package source

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/tag-extractor/pkg/caching"
	"github.com/dtnitsch/tag-extractor/pkg/fetcher"
	"github.com/dtnitsch/tag-extractor/pkg/parser"
	"github.com/dtnitsch/tag-extractor/pkg/tagger"
)

// ErrSourceRead wraps every failure to obtain a source's lines.
var ErrSourceRead = errors.New("source not readable")

// Stdin is the source name that reads standard input.
const Stdin = "-"

type Kind string

const (
	KindText  Kind = "text"
	KindHTML  Kind = "html"
	KindURL   Kind = "url"
	KindStdin Kind = "stdin"
)

// Text is a loaded source.
type Text struct {
	Name  string
	Kind  Kind
	Lines []string
	Hash  string // hex SHA-256 of the raw bytes
	Bytes int
}

// Loader resolves source names. The zero value reads files and stdin but
// cannot fetch URLs; use NewLoader for that.
type Loader struct {
	Fetcher *fetcher.Fetcher
	Cache   *caching.Cache
	Parser  *parser.Parser
	Stdin   io.Reader
	Logger  *slog.Logger
}

// NewLoader returns a Loader that fetches URLs and caches them in cache,
// which may be nil.
func NewLoader(cache *caching.Cache, logger *slog.Logger) *Loader {
	return &Loader{
		Fetcher: fetcher.NewFetcher(),
		Cache:   cache,
		Parser:  &parser.Parser{},
		Stdin:   os.Stdin,
		Logger:  logger,
	}
}

// IsURL reports whether name should be fetched over HTTP.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Load reads the named source.
func (l *Loader) Load(ctx context.Context, name string) (*Text, error) {
	switch {
	case name == Stdin:
		return l.loadStdin()
	case IsURL(name):
		return l.loadURL(ctx, name)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		abs, err := filepath.Abs(name)
		if err != nil {
			abs = name
		}
		fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
		return l.fromHTML(name, KindHTML, fileURL, data)
	}
	return fromText(name, KindText, data)
}

func (l *Loader) loadStdin() (*Text, error) {
	r := l.Stdin
	if r == nil {
		r = os.Stdin
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: stdin: %w", ErrSourceRead, err)
	}
	return fromText(Stdin, KindStdin, data)
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (*Text, error) {
	if l.Cache != nil {
		if data, ok := l.Cache.Get(rawURL); ok {
			l.logDebug("Using cached page", "url", rawURL)
			return l.fromFetched(rawURL, data)
		}
	}

	if l.Fetcher == nil {
		return nil, fmt.Errorf("%w: %s: no fetcher configured", ErrSourceRead, rawURL)
	}
	data, err := l.Fetcher.GetBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	if l.Cache != nil {
		if err := l.Cache.Set(rawURL, data); err != nil && l.Logger != nil {
			l.Logger.Warn("Failed to cache page", "url", rawURL, "error", err)
		}
	}
	return l.fromFetched(rawURL, data)
}

func (l *Loader) fromFetched(rawURL string, data []byte) (*Text, error) {
	if strings.HasPrefix(http.DetectContentType(data), "text/html") {
		return l.fromHTML(rawURL, KindURL, rawURL, data)
	}
	return fromText(rawURL, KindURL, data)
}

func (l *Loader) fromHTML(name string, kind Kind, pageURL string, data []byte) (*Text, error) {
	p := l.Parser
	if p == nil {
		p = &parser.Parser{}
	}
	lines, err := p.TextLines(pageURL, string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceRead, name, err)
	}
	if lines == nil {
		lines = []string{}
	}
	return &Text{
		Name:  name,
		Kind:  kind,
		Lines: lines,
		Hash:  hash(data),
		Bytes: len(data),
	}, nil
}

func fromText(name string, kind Kind, data []byte) (*Text, error) {
	lines, err := ReadLines(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Text{
		Name:  name,
		Kind:  kind,
		Lines: lines,
		Hash:  hash(data),
		Bytes: len(data),
	}, nil
}

// ReadLines reads every line from r. The result is never nil on success;
// on failure nothing read so far is returned.
func ReadLines(r io.Reader) ([]string, error) {
	lines := []string{}
	scanner := tagger.NewLineScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	return lines, nil
}

// ReadFileLines opens path and reads its lines.
func ReadFileLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	defer f.Close()
	return ReadLines(f)
}

func hash(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

func (l *Loader) logDebug(msg string, args ...any) {
	if l.Logger != nil {
		l.Logger.Debug(msg, args...)
	}
}
