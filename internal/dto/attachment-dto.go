package dto

type AttachmentDTO struct {
	ID        uint64  `json:"id"`
	RequestID uint64  `json:"request_id"`
	FileName  string  `json:"file_name"`
	FileURL   string  `json:"file_url"`
	CreatedAt string  `json:"created_at"`
	Uploader  *string `json:"uploader,omitempty"`
}
