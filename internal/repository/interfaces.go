package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"classifieds-hub/internal/category"
	"classifieds-hub/internal/model"
)

var ErrNotFound = errors.New("record not found")

// PageRequest is a zero-based page descriptor. Bounds are enforced by
// the engine before any call reaches the store.
type PageRequest struct {
	Page int
	Size int
}

// Page carries one page of announcements together with the paging
// metadata computed by the store. Callers pass it through verbatim.
type Page struct {
	Items         []*model.Announcement
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
	Last          bool
}

// AnnouncementRepository is the record store contract. The list surface
// is a fixed set of eight query shapes, one per present/absent
// combination of the category, created-after, and keyword filters; the
// store does not offer composable predicates.
type AnnouncementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	Save(ctx context.Context, item *model.Announcement) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	List(ctx context.Context, page PageRequest) (*Page, error)
	ListByCategory(ctx context.Context, cat category.Category, page PageRequest) (*Page, error)
	ListCreatedAfter(ctx context.Context, after time.Time, page PageRequest) (*Page, error)
	ListByKeyword(ctx context.Context, keyword string, page PageRequest) (*Page, error)
	ListByCategoryCreatedAfter(ctx context.Context, cat category.Category, after time.Time, page PageRequest) (*Page, error)
	ListByCategoryKeyword(ctx context.Context, cat category.Category, keyword string, page PageRequest) (*Page, error)
	ListCreatedAfterKeyword(ctx context.Context, after time.Time, keyword string, page PageRequest) (*Page, error)
	ListByCategoryCreatedAfterKeyword(ctx context.Context, cat category.Category, after time.Time, keyword string, page PageRequest) (*Page, error)
}
