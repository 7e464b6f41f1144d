package detector

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Unknown is reported when the text is empty or no language wins.
const Unknown = "unknown"

// maxSampleBytes bounds how much text is handed to the language models.
const maxSampleBytes = 64 * 1024

var supported = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
}

// Language is the outcome of a detection.
type Language struct {
	Name       string  `json:"name" yaml:"name"`
	ISO        string  `json:"iso,omitempty" yaml:"iso,omitempty"`
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0-1
}

// Detector guesses the natural language of source text. The underlying
// lingua detector is built on first use.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{}
}

func (d *Detector) init() {
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(supported...).
			Build()
	})
}

// Detect returns the most likely language of lines.
func (d *Detector) Detect(lines []string) Language {
	sample := sampleText(lines)
	if sample == "" {
		return Language{Name: Unknown}
	}

	d.init()
	lang, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return Language{Name: Unknown}
	}

	return Language{
		Name:       strings.ToLower(lang.String()),
		ISO:        strings.ToLower(lang.IsoCode639_1().String()),
		Confidence: d.detector.ComputeLanguageConfidence(sample, lang),
	}
}

func sampleText(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len()+len(line) > maxSampleBytes {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}
