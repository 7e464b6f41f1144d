package extract

import "time"

// BuiltinStopWordsName identifies the built-in English list in reports and
// run history.
const BuiltinStopWordsName = "builtin:english"

// Options is the resolved configuration of one extract run: config file
// values overridden by flags.
type Options struct {
	RunUUID          string
	Sources          []string
	StopWordsPath    string
	BuiltinStopWords bool
	OutputPath       string
	ReportPath       string
	Top              int
	KeepEmpty        bool
	Workers          int
	DetectLanguage   bool
	NoHistory        bool
	DBPath           string
	CacheDir         string
	MaxAge           time.Duration
}
