package models

// ServerInfo describes the running server and the limits it enforces on
// notes.
type ServerInfo struct {
	Version         string `json:"version"`
	MaxTitleRunes   int    `json:"max_title_runes"`
	MaxContentBytes int    `json:"max_content_bytes"`
}
