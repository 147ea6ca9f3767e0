// AngelaMos | 2026
// entity.go

package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Document struct {
	ID           string    `db:"id"`
	Bucket       string    `db:"bucket"`
	FilePath     string    `db:"file_path"`
	FileName     string    `db:"file_name"`
	ContentType  string    `db:"content_type"`
	SizeBytes    int64     `db:"size_bytes"`
	DocumentType string    `db:"document_type"`
	Tags         Tags      `db:"tags"`
	IsSigned     bool      `db:"is_signed"`
	OwnerID      *string   `db:"owner_id"`
	UploadedBy   string    `db:"uploaded_by"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (d *Document) OwnedBy(profileID string) bool {
	return d.OwnerID != nil && *d.OwnerID == profileID
}

// Tags is a text[] column. Reads select it through to_json so it scans
// without a driver-specific array type.
type Tags []string

func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan tags: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan tags: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}

// ParseTags splits a comma separated list, dropping blanks and duplicates.
func ParseTags(raw string) Tags {
	seen := make(map[string]struct{})
	out := Tags{}
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// BucketCount is one row of the per-bucket document tally.
type BucketCount struct {
	Bucket string `db:"bucket" json:"bucket"`
	Count  int    `db:"count"  json:"count"`
	Bytes  int64  `db:"bytes"  json:"bytes"`
}
