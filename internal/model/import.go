package model

import "time"

// ImportSource where a workbook came from
type ImportSource string

const (
	ImportSourceUpload  ImportSource = "upload"
	ImportSourceDefault ImportSource = "default"
	ImportSourceCLI     ImportSource = "cli"
)

// ImportLog one workbook load attempt
type ImportLog struct {
	ID           int64        `json:"id"`
	WorkbookID   string       `json:"workbookId"`
	Filename     string       `json:"filename"`
	Source       ImportSource `json:"source"`
	Sheet        string       `json:"sheet"`
	TotalRows    int          `json:"totalRows"`
	KeptRows     int          `json:"keptRows"`
	DroppedRows  int          `json:"droppedRows"`
	Status       string       `json:"status"` // processing/imported/error
	ErrorMessage string       `json:"errorMessage,omitempty"`
	StartedAt    time.Time    `json:"startedAt"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
}

// import log statuses
const (
	ImportStatusProcessing = "processing"
	ImportStatusImported   = "imported"
	ImportStatusError      = "error"
)
