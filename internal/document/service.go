// AngelaMos | 2026
// service.go

package document

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
	"github.com/carterperez-dev/foodhall/internal/storage"
)

// Viewer is the caller a document operation is performed for.
type Viewer struct {
	ID   string
	Role string
}

func (v Viewer) IsAdmin() bool {
	return v.Role == core.RoleAdmin
}

// canSee reports whether v may read d. Only admins see documents they do
// not own.
func (v Viewer) canSee(d *Document) bool {
	return v.IsAdmin() || d.OwnedBy(v.ID)
}

// Upload describes one file to store.
type Upload struct {
	Bucket       string
	FileName     string
	ContentType  string
	DocumentType string
	Tags         Tags
	OwnerID      string
	Body         io.Reader
}

type Service struct {
	repo      Repository
	store     storage.Store
	documents *listview.Collection[Document]
}

func NewService(repo Repository, store storage.Store, cache listview.Store) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		documents: listview.NewCollection("document_metadata", cache, repo.ListAll),
	}
}

var listSpec = listview.Spec[Document]{
	Search: func(d Document) []string {
		return append([]string{d.FileName, d.DocumentType}, d.Tags...)
	},
	Filters: map[string]func(Document) []string{
		"bucket":        func(d Document) []string { return listview.One(d.Bucket) },
		"document_type": func(d Document) []string { return listview.One(d.DocumentType) },
		"signed":        func(d Document) []string { return listview.Bool(d.IsSigned) },
		"tag":           func(d Document) []string { return d.Tags },
	},
	Sorts: map[string]func(a, b Document) int{
		"newest": listview.Desc(byCreated),
		"oldest": byCreated,
		"name":   listview.ByString(func(d Document) string { return d.FileName }),
		"size":   listview.Desc(listview.ByNumber(func(d Document) int64 { return d.SizeBytes })),
	},
	DefaultSort: "newest",
}

var byCreated = listview.ByTime(func(d Document) time.Time { return d.CreatedAt })

func ListSpec() listview.Spec[Document] {
	return listSpec
}

func (s *Service) List(
	ctx context.Context,
	q listview.Query,
	viewer Viewer,
) (listview.Result[Document], error) {
	items, err := s.documents.Items(ctx)
	if err != nil {
		return listview.Result[Document]{}, err
	}

	if !viewer.IsAdmin() {
		items = slices.DeleteFunc(items, func(d Document) bool {
			return !d.OwnedBy(viewer.ID)
		})
	}

	return listview.Apply(items, q, listSpec)
}

func (s *Service) Get(ctx context.Context, id string, viewer Viewer) (*Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.canSee(d) {
		return nil, core.NotFoundError("document")
	}
	return d, nil
}

// Upload writes the blob and then its metadata row. When the row cannot be
// stored the blob is removed again.
func (s *Service) Upload(ctx context.Context, in Upload, viewer Viewer) (*Document, error) {
	if !storage.IsBucket(in.Bucket) {
		return nil, core.ValidationError("unknown bucket", map[string][]string{
			"bucket": {"must be one of: " + strings.Join(storage.Buckets, ", ")},
		})
	}

	owner := in.OwnerID
	if !viewer.IsAdmin() {
		if in.Bucket == storage.BucketAdminDocuments {
			return nil, core.ForbiddenError("bucket is restricted to administrators")
		}
		owner = viewer.ID
	}

	name := storage.SafeName(in.FileName)
	d := &Document{
		ID:           uuid.New().String(),
		Bucket:       in.Bucket,
		FileName:     name,
		ContentType:  contentType(in.ContentType, name),
		DocumentType: strings.TrimSpace(in.DocumentType),
		Tags:         in.Tags,
		UploadedBy:   viewer.ID,
	}
	d.FilePath = d.ID + "-" + name
	if owner != "" {
		d.OwnerID = &owner
	}
	if d.Tags == nil {
		d.Tags = Tags{}
	}

	size, err := s.store.Put(ctx, d.Bucket, d.FilePath, in.Body)
	if err != nil {
		return nil, err
	}
	d.SizeBytes = size

	err = s.documents.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, d)
	})
	if err != nil {
		if delErr := s.store.Delete(context.WithoutCancel(ctx), d.Bucket, d.FilePath); delErr != nil {
			slog.ErrorContext(ctx, "orphaned blob after failed document insert",
				"bucket", d.Bucket,
				"path", d.FilePath,
				"error", delErr,
			)
		}
		return nil, err
	}

	return d, nil
}

// Open returns the document and a reader over its content. The caller closes
// the reader.
func (s *Service) Open(
	ctx context.Context,
	id string,
	viewer Viewer,
) (*Document, io.ReadCloser, error) {
	d, err := s.Get(ctx, id, viewer)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.store.Open(ctx, d.Bucket, d.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return d, body, nil
}

// SetSigned marks the document signed or unsigned. Setting the current
// value writes nothing.
func (s *Service) SetSigned(ctx context.Context, id string, signed bool) (*Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsSigned == signed {
		return d, nil
	}

	d.IsSigned = signed
	err = s.documents.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.SetSigned(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the metadata row and the blob together. A blob that is
// already gone does not block the delete.
func (s *Service) Delete(ctx context.Context, id string, viewer Viewer) error {
	if _, err := s.Get(ctx, id, viewer); err != nil {
		return err
	}

	return s.documents.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.DeleteWith(ctx, id, func(d *Document) error {
			err := s.store.Delete(ctx, d.Bucket, d.FilePath)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				return err
			}
			return nil
		})
	})
}

func (s *Service) CountByBucket(ctx context.Context) ([]BucketCount, error) {
	return s.repo.CountByBucket(ctx)
}

func contentType(declared, name string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
