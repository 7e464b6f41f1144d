package models

// Report describes one extraction run. It is printed to stdout and can be
// saved as YAML or JSON.
type Report struct {
	RunID        int64           `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	UUID         string          `json:"uuid" yaml:"uuid"`
	GeneratedAt  string          `json:"generated_at" yaml:"generated_at"`
	Sources      []SourceSummary `json:"sources" yaml:"sources"`
	StopWords    StopWordsInfo   `json:"stop_words" yaml:"stop_words"`
	KeepEmpty    bool            `json:"keep_empty,omitempty" yaml:"keep_empty,omitempty"`
	TotalTags    int             `json:"total_tags" yaml:"total_tags"`
	DistinctTags int             `json:"distinct_tags" yaml:"distinct_tags"`
	Language     *LanguageInfo   `json:"language,omitempty" yaml:"language,omitempty"`
	OutputPath   string          `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	TopTags      []string        `json:"top_tags" yaml:"top_tags"`
	Tags         []TagEntry      `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// SourceSummary is one text source of a run.
type SourceSummary struct {
	Name      string `json:"name" yaml:"name"`
	Kind      string `json:"kind" yaml:"kind"`
	Hash      string `json:"hash" yaml:"hash"`
	Lines     int    `json:"lines" yaml:"lines"`
	SizeBytes int    `json:"size_bytes" yaml:"size_bytes"`
	Tags      int    `json:"tags" yaml:"tags"` // tag occurrences found in this source
}

type StopWordsInfo struct {
	Source string `json:"source" yaml:"source"`
	Count  int    `json:"count" yaml:"count"`
}

type LanguageInfo struct {
	Name       string  `json:"name" yaml:"name"`
	ISO        string  `json:"iso,omitempty" yaml:"iso,omitempty"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

type TagEntry struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}
