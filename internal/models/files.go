package models

import "time"

type FileStatus string

const (
	FileStatusPending    FileStatus = "pending"
	FileStatusProcessing FileStatus = "processing"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusFailed     FileStatus = "failed"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// IsSupportedMime reports whether a course file of this type can be uploaded.
func IsSupportedMime(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOCX, MimePPTX:
		return true
	}
	return false
}

type FileRecord struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	MimeType       string     `json:"mime_type" db:"mime_type"`
	Size           int64      `json:"size" db:"size"`
	UploadedAt     time.Time  `json:"uploaded_at" db:"uploaded_at"`
	OwnerID        string     `json:"owner_id" db:"owner_id"`
	Status         FileStatus `json:"status" db:"status"`
	ContentPreview string     `json:"content_preview,omitempty" db:"content_preview"`
	StorageKey     string     `json:"-" db:"storage_key"`
}

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
	OwnerID     string
}
