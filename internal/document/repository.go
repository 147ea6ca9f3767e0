// AngelaMos | 2026
// repository.go

package document

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	ListAll(ctx context.Context) ([]Document, error)
	SetSigned(ctx context.Context, d *Document) error
	// DeleteWith removes the row and runs fn before committing. An error from
	// fn rolls the delete back.
	DeleteWith(ctx context.Context, id string, fn func(d *Document) error) error
	CountByBucket(ctx context.Context) ([]BucketCount, error)
}

type repository struct {
	db core.DBTX
	tx core.TxRunner
}

func NewRepository(db core.DBTX, tx core.TxRunner) Repository {
	return &repository{db: db, tx: tx}
}

const documentColumns = `
	id, bucket, file_path, file_name, content_type, size_bytes, document_type,
	to_json(tags) AS tags, is_signed, owner_id, uploaded_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, d *Document) error {
	query := `
		INSERT INTO document_metadata (
			id, bucket, file_path, file_name, content_type, size_bytes,
			document_type, tags, is_signed, owner_id, uploaded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return core.GetOne(ctx, r.db, d, "create document", query,
		d.ID,
		d.Bucket,
		d.FilePath,
		d.FileName,
		d.ContentType,
		d.SizeBytes,
		d.DocumentType,
		[]string(d.Tags),
		d.IsSigned,
		d.OwnerID,
		d.UploadedBy,
	)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := core.GetOne(ctx, r.db, &d, "get document",
		`SELECT `+documentColumns+` FROM document_metadata WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Document, error) {
	var items []Document
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+documentColumns+` FROM document_metadata ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return items, nil
}

func (r *repository) SetSigned(ctx context.Context, d *Document) error {
	query := `
		UPDATE document_metadata
		SET is_signed = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &d.UpdatedAt, "set document signed", query,
		d.ID, d.IsSigned)
}

func (r *repository) DeleteWith(
	ctx context.Context,
	id string,
	fn func(d *Document) error,
) error {
	return r.tx.InTx(ctx, func(tx core.DBTX) error {
		var d Document
		err := core.GetOne(ctx, tx, &d, "delete document",
			`DELETE FROM document_metadata WHERE id = $1 RETURNING `+documentColumns, id)
		if err != nil {
			return err
		}
		return fn(&d)
	})
}

func (r *repository) CountByBucket(ctx context.Context) ([]BucketCount, error) {
	var counts []BucketCount
	err := r.db.SelectContext(ctx, &counts, `
		SELECT bucket, COUNT(*) AS count, COALESCE(SUM(size_bytes), 0) AS bytes
		FROM document_metadata
		GROUP BY bucket
		ORDER BY bucket`)
	if err != nil {
		return nil, fmt.Errorf("count documents by bucket: %w", err)
	}
	return counts, nil
}
