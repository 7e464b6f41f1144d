// Package session holds the state an interactive front end keeps between
// actions: the loaded texts, the loaded stop words and the last result.
// Every action calls into the stateless tagger package.
package session

import (
	"errors"

	"github.com/dtnitsch/tag-extractor/pkg/mapreduce"
	"github.com/dtnitsch/tag-extractor/pkg/tagger"
)

// ErrNothingToSave is returned by Save when there are no tags to write.
var ErrNothingToSave = errors.New("no tags to save")

// Sink receives formatted result lines.
type Sink interface {
	SaveLines(path string, lines []string) error
}

type text struct {
	name  string
	lines []string
}

// Session is not safe for concurrent use.
type Session struct {
	texts     []text
	stopName  string
	stopWords tagger.StopWordSet
	opts      []tagger.Option

	result tagger.Frequencies
	totals []int
}

// New creates an empty session. opts are passed to every extraction.
func New(opts ...tagger.Option) *Session {
	return &Session{opts: opts}
}

// LoadText replaces every loaded text with this one.
func (s *Session) LoadText(name string, lines []string) {
	s.texts = nil
	s.AddText(name, lines)
}

// AddText loads one more text; the next Extract counts all of them together.
// A nil lines is stored as an empty text.
func (s *Session) AddText(name string, lines []string) {
	if lines == nil {
		lines = []string{}
	}
	s.texts = append(s.texts, text{name: name, lines: lines})
}

// LoadStopWords builds a fresh stop-word set from lines, replacing any
// previously loaded set.
func (s *Session) LoadStopWords(name string, lines []string) {
	s.stopName = name
	s.stopWords = tagger.LoadStopWords(lines)
}

// TextNames lists the loaded texts in load order.
func (s *Session) TextNames() []string {
	names := make([]string, len(s.texts))
	for i, t := range s.texts {
		names[i] = t.name
	}
	return names
}

func (s *Session) StopWordsName() string { return s.stopName }

// StopWords returns the loaded set, or nil if none was loaded.
func (s *Session) StopWords() tagger.StopWordSet {
	return s.stopWords
}

// Extract counts tags over every loaded text. Each text is mapped on its own
// and the maps are summed. On failure the previous result stays in place.
func (s *Session) Extract() (tagger.Frequencies, error) {
	if len(s.texts) == 0 {
		return nil, tagger.ErrMissingText
	}
	if s.stopWords == nil {
		return nil, tagger.ErrMissingStopWords
	}

	partial := make([]tagger.Frequencies, len(s.texts))
	totals := make([]int, len(s.texts))
	for i, t := range s.texts {
		frequencies, err := mapreduce.Map(t.lines, s.stopWords, s.opts...)
		if err != nil {
			return nil, err
		}
		partial[i] = frequencies
		totals[i] = tagger.Total(frequencies)
	}

	s.result = mapreduce.Reduce(partial)
	s.totals = totals
	return s.result, nil
}

// Result returns the last successful extraction, or nil.
func (s *Session) Result() tagger.Frequencies {
	return s.result
}

// TextTotals returns, per loaded text, how many tag occurrences the last
// successful extraction found in it.
func (s *Session) TextTotals() []int {
	return s.totals
}

// Save writes the last result to path through sink.
func (s *Session) Save(sink Sink, path string) error {
	if len(s.result) == 0 {
		return ErrNothingToSave
	}
	return sink.SaveLines(path, tagger.FormatLines(s.result))
}
