package entities

import "time"

type Attachment struct {
	ID         uint64    `json:"id"`
	RequestID  uint64    `json:"request_id"`
	FilePath   string    `json:"file_path"`
	FileName   string    `json:"file_name"`
	UploadedBy *uint64   `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
