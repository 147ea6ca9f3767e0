// AngelaMos | 2026
// dto.go

package document

import (
	"time"
)

type uploadForm struct {
	Bucket       string `json:"bucket"        validate:"required"`
	DocumentType string `json:"document_type" validate:"required,max=64"`
	Tags         string `json:"tags"          validate:"max=500"`
	OwnerID      string `json:"owner_id"      validate:"omitempty,uuid"`
}

type SignedRequest struct {
	IsSigned *bool `json:"is_signed" validate:"required"`
}

type DocumentResponse struct {
	ID           string    `json:"id"`
	Bucket       string    `json:"bucket"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	DocumentType string    `json:"document_type"`
	Tags         []string  `json:"tags"`
	IsSigned     bool      `json:"is_signed"`
	OwnerID      *string   `json:"owner_id"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToDocumentResponse(d *Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		Bucket:       d.Bucket,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		DocumentType: d.DocumentType,
		Tags:         d.Tags,
		IsSigned:     d.IsSigned,
		OwnerID:      d.OwnerID,
		UploadedBy:   d.UploadedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func ToDocumentResponseList(items []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(items))
	for i := range items {
		out = append(out, ToDocumentResponse(&items[i]))
	}
	return out
}
