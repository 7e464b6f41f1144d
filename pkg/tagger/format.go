package tagger

import (
	"fmt"
	"sort"
)

// TagCount is a single entry of a Frequencies map.
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// Sorted returns every entry ordered by count descending, then tag ascending.
func Sorted(frequencies Frequencies) []TagCount {
	counts := make([]TagCount, 0, len(frequencies))
	for tag, count := range frequencies {
		counts = append(counts, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Tag < counts[j].Tag
	})

	return counts
}

// Top returns the n most frequent tags. n <= 0 returns all of them.
func Top(frequencies Frequencies, n int) []TagCount {
	counts := Sorted(frequencies)
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// FormatLines renders one "word: count" line per tag, most frequent first.
func FormatLines(frequencies Frequencies) []string {
	counts := Sorted(frequencies)
	lines := make([]string, len(counts))
	for i, tc := range counts {
		lines[i] = tc.String()
	}
	return lines
}

func (tc TagCount) String() string {
	return fmt.Sprintf("%s: %d", tc.Tag, tc.Count)
}

// Total sums every count in frequencies.
func Total(frequencies Frequencies) int {
	total := 0
	for _, count := range frequencies {
		total += count
	}
	return total
}
