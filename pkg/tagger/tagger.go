// Package tagger counts tags in text: whitespace-delimited tokens reduced to
// their lowercase ASCII letters, minus a caller-supplied stop-word set.
//
// The package performs no I/O beyond the io.Reader convenience in
// CountReader. Callers own file access, threading and session state.
package tagger

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMissingPrerequisite is returned when extraction is attempted
	// before both a text and a stop-word set are available.
	ErrMissingPrerequisite = errors.New("extraction attempted without prerequisites")

	ErrMissingText      = fmt.Errorf("%w: no source text loaded", ErrMissingPrerequisite)
	ErrMissingStopWords = fmt.Errorf("%w: no stop words loaded", ErrMissingPrerequisite)
)

// Frequencies maps a tag to the number of times it occurred.
type Frequencies map[string]int

type options struct {
	keepEmpty bool
}

// Option tweaks how Extract tokenizes and filters.
type Option func(*options)

// WithEmptyTags keeps tokens that normalize to the empty string and splits
// lines the way the legacy desktop tool did: a line that starts with
// whitespace yields a leading empty token and a blank line yields one empty
// token. Empty tokens are then counted under "" unless "" is a stop word.
func WithEmptyTags() Option {
	return func(o *options) {
		o.keepEmpty = true
	}
}

// Extract counts the tags in lines. A nil lines or stopWords means the input
// was never provided and yields an ErrMissingPrerequisite error; empty but
// non-nil inputs are valid.
func Extract(lines []string, stopWords StopWordSet, opts ...Option) (Frequencies, error) {
	if lines == nil {
		return nil, ErrMissingText
	}
	if stopWords == nil {
		return nil, ErrMissingStopWords
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	frequencies := make(Frequencies)
	for _, line := range lines {
		countLine(frequencies, line, stopWords, o)
	}

	return frequencies, nil
}

// CountReader reads r line by line and extracts tags from it. A read error
// is returned on its own; the partially built map is discarded.
func CountReader(r io.Reader, stopWords StopWordSet, opts ...Option) (Frequencies, error) {
	if r == nil {
		return nil, ErrMissingText
	}
	if stopWords == nil {
		return nil, ErrMissingStopWords
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	frequencies := make(Frequencies)
	scanner := NewLineScanner(r)
	for scanner.Scan() {
		countLine(frequencies, scanner.Text(), stopWords, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading text: %w", err)
	}

	return frequencies, nil
}

func countLine(frequencies Frequencies, line string, stopWords StopWordSet, o options) {
	var tokens []string
	if o.keepEmpty {
		tokens = splitVerbatim(line)
	} else {
		tokens = strings.Fields(line)
	}

	for _, token := range tokens {
		tag := Normalize(token)
		if tag == "" && !o.keepEmpty {
			continue
		}
		if stopWords.Contains(tag) {
			continue
		}
		frequencies[tag]++
	}
}

// Normalize drops every character that is not an ASCII letter and
// lowercases what is left. "FOX!!" becomes "fox", "42" becomes "".
func Normalize(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

func isSplitSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// splitVerbatim splits on runs of ASCII whitespace, keeping a leading empty
// token and dropping trailing ones. A line with no separators is returned
// as its only token, so "" yields [""] and "   " yields nothing.
func splitVerbatim(line string) []string {
	fields := strings.FieldsFunc(line, isSplitSpace)
	if len(fields) == 0 {
		if line == "" {
			return []string{""}
		}
		return nil
	}
	if isSplitSpace(rune(line[0])) {
		return append([]string{""}, fields...)
	}
	return fields
}
