package model

import "time"

// Export is a full snapshot of one user's goals and records.
type Export struct {
	ExportedAt time.Time      `json:"exported_at"`
	UserID     string         `json:"user_id"`
	Goals      []*Goal        `json:"goals"`
	Records    []*StudyRecord `json:"records"`
}

// ExportArchive points at a snapshot stored in object storage.
type ExportArchive struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
