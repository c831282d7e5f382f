package model

import "time"

// Document status values.
const (
	DocumentStatusPending  = "Pending"
	DocumentStatusReviewed = "Reviewed"
	DocumentStatusApproved = "Approved"
)

// Document represents a binary artifact (e.g. a PDF) attached to exactly
// one case. The bytes themselves live in object storage under StoragePath.
// Pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID           string    `json:"id"`
	CaseID       string    `json:"case_id"`
	DocumentName string    `json:"document_name"`
	DocumentType string    `json:"document_type"`
	Status       string    `json:"status"`
	StoragePath  string    `json:"storage_path"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DocumentDetail is a document joined with its case title/number.
type DocumentDetail struct {
	Document
	CaseTitle  string `json:"case_title"`
	CaseNumber string `json:"case_number"`
}

// ValidDocumentStatus reports whether s is one of the defined document statuses.
func ValidDocumentStatus(s string) bool {
	switch s {
	case DocumentStatusPending, DocumentStatusReviewed, DocumentStatusApproved:
		return true
	}
	return false
}
