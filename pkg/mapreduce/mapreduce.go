package mapreduce

import "github.com/dtnitsch/tag-extractor/pkg/tagger"

// Map generates a tag frequency map for a single source's lines.
func Map(lines []string, stopWords tagger.StopWordSet, opts ...tagger.Option) (tagger.Frequencies, error) {
	return tagger.Extract(lines, stopWords, opts...)
}

// Reduce aggregates a slice of tag frequency maps into a single map.
func Reduce(intermediate []tagger.Frequencies) tagger.Frequencies {
	finalResults := make(tagger.Frequencies)

	for _, counts := range intermediate {
		for tag, count := range counts {
			finalResults[tag] += count
		}
	}

	return finalResults
}
