package models

// Compilation is a curated, optionally pinned set of events
type Compilation struct {
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Pinned bool   `json:"pinned" db:"pinned"`
}
