package models

// ImportReport lists what an import created and what it left out.
type ImportReport struct {
	Created []Note
	Skipped []ImportSkip
}

// ImportSkip is a file that did not become a note, with the reason.
type ImportSkip struct {
	Path   string
	Reason string
}
