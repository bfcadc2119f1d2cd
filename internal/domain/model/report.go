package model

// LogMatchResult is the outcome of correlating one failed process with its
// log file. Constructed once per failed process per report run, never mutated
// afterwards.
type LogMatchResult struct {
	// Found reports whether a log file containing the process UUID was located.
	Found bool
	// LogFile is the path of the matched log file, empty when Found is false.
	LogFile string
	// LineCount is the number of extracted lines mentioning the process UUID.
	LineCount int
	// Summary is the bounded, human-readable error summary for the email body.
	Summary string
	// SavedPath points at the persisted full extraction, empty when nothing
	// was saved.
	SavedPath string
}

// VideoLookupResult is the outcome of searching cloud storage for a finished
// process's video artifact.
type VideoLookupResult struct {
	ClientName string
	APIKey     string
	// VideoLink is the shareable URL of the artifact; empty means none found.
	VideoLink string
	// Skipped is true when the process had no API key and the lookup never ran.
	Skipped bool
}

// Report is the rendered email payload. Built once, sent once, discarded.
type Report struct {
	Subject  string
	HTMLBody string
	TextBody string
}
