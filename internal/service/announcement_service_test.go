package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classifieds-hub/internal/category"
	"classifieds-hub/internal/model"
	"classifieds-hub/internal/repository"
)

type fakeRepo struct {
	items     map[uuid.UUID]*model.Announcement
	lastShape string
	listPages int
	sweptAt   *time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*model.Announcement)}
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Announcement, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (f *fakeRepo) Save(_ context.Context, item *model.Announcement) error {
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.sweptAt = &cutoff
	var deleted int64
	for id, item := range f.items {
		if item.CreatedAt.Before(cutoff) {
			delete(f.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRepo) page(shape string, page repository.PageRequest) (*repository.Page, error) {
	f.lastShape = shape
	f.listPages++

	items := make([]*model.Announcement, 0, len(f.items))
	for _, item := range f.items {
		clone := *item
		items = append(items, &clone)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	total := int64(len(items))
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	start := page.Page * page.Size
	if start > len(items) {
		start = len(items)
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}

	return &repository.Page{
		Items:         items[start:end],
		Number:        page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page.Page+1 >= totalPages,
	}, nil
}

func (f *fakeRepo) List(_ context.Context, page repository.PageRequest) (*repository.Page, error) {
	return f.page("none", page)
}

func (f *fakeRepo) ListByCategory(_ context.Context, _ category.Category, page repository.PageRequest) (*repository.Page, error) {
	return f.page("category", page)
}

func (f *fakeRepo) ListCreatedAfter(_ context.Context, _ time.Time, page repository.PageRequest) (*repository.Page, error) {
	return f.page("after", page)
}

func (f *fakeRepo) ListByKeyword(_ context.Context, _ string, page repository.PageRequest) (*repository.Page, error) {
	return f.page("keyword", page)
}

func (f *fakeRepo) ListByCategoryCreatedAfter(_ context.Context, _ category.Category, _ time.Time, page repository.PageRequest) (*repository.Page, error) {
	return f.page("category+after", page)
}

func (f *fakeRepo) ListByCategoryKeyword(_ context.Context, _ category.Category, _ string, page repository.PageRequest) (*repository.Page, error) {
	return f.page("category+keyword", page)
}

func (f *fakeRepo) ListCreatedAfterKeyword(_ context.Context, _ time.Time, _ string, page repository.PageRequest) (*repository.Page, error) {
	return f.page("after+keyword", page)
}

func (f *fakeRepo) ListByCategoryCreatedAfterKeyword(_ context.Context, _ category.Category, _ time.Time, _ string, page repository.PageRequest) (*repository.Page, error) {
	return f.page("category+after+keyword", page)
}

type fakeNotifier struct {
	sent []*model.Announcement
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, item *model.Announcement) error {
	if f.err != nil {
		return f.err
	}
	clone := *item
	f.sent = append(f.sent, &clone)
	return nil
}

func newTestService(repo *fakeRepo, notifier *fakeNotifier) *AnnouncementService {
	return NewAnnouncementService(repo, notifier, nil)
}

func validRequest() AnnouncementRequest {
	return AnnouncementRequest{
		Title:    "Room for rent",
		Content:  "Sunny room close to the campus.",
		Category: "HOUSING",
		Contact:  ContactRequest{Email: "a@b.com"},
	}
}

func TestCreate_MintsIdentityAndHidesEditCode(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	view, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, "Room for rent", view.Title)
	assert.Equal(t, category.Housing, view.Category)

	stored := repo.items[view.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.EditCode, "edit code must be minted and stored")

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, stored.EditCode, notifier.sent[0].EditCode, "confirmation carries the edit code")
}

func TestCreate_CategoryNormalizedAcrossSpellings(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	for _, spelling := range []string{"housing", "HOUSING", " Housing "} {
		req := validRequest()
		req.Category = spelling
		view, err := svc.Create(context.Background(), req)
		require.NoError(t, err, "category %q", spelling)
		assert.Equal(t, category.Housing, view.Category)
	}
}

func TestCreate_InvalidCategory(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	req := validRequest()
	req.Category = "GARDENING"
	_, err := svc.Create(context.Background(), req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
	assert.Contains(t, vErr.Message, "HOUSING")

	req.Category = "   "
	_, err = svc.Create(context.Background(), req)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "required")
}

func TestCreate_FieldValidationFailuresCollected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	req := AnnouncementRequest{Category: "JOB", Contact: ContactRequest{Email: "nope"}}
	_, err := svc.Create(context.Background(), req)

	var fErr *FieldValidationError
	require.ErrorAs(t, err, &fErr)
	assert.Contains(t, fErr.Fields, "title")
	assert.Contains(t, fErr.Fields, "content")
	assert.Contains(t, fErr.Fields, "email")
	assert.Empty(t, repo.items, "nothing persisted on validation failure")
}

func TestCreate_NotificationFailureKeepsRecord(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := newTestService(repo, notifier)

	_, err := svc.Create(context.Background(), validRequest())

	var nErr *NotificationError
	require.ErrorAs(t, err, &nErr)
	assert.Len(t, repo.items, 1, "record stays persisted when delivery fails")
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeNotifier{})

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestUpdate_AuthorizationSequence(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	editCode := repo.items[created.ID].EditCode

	req := validRequest()
	req.Title = "Room for rent, updated"

	_, err = svc.Update(context.Background(), uuid.NewString(), editCode, req)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound, "unknown id reports not-found, not forbidden")

	_, err = svc.Update(context.Background(), created.ID.String(), uuid.NewString(), req)
	assert.ErrorIs(t, err, ErrInvalidEditCode, "existing id with wrong code reports forbidden")

	view, err := svc.Update(context.Background(), created.ID.String(), editCode, req)
	require.NoError(t, err)
	assert.Equal(t, "Room for rent, updated", view.Title)
	assert.Equal(t, editCode, repo.items[created.ID].EditCode, "edit code carried forward")
	assert.True(t, view.CreatedAt.After(created.CreatedAt) || view.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdate_RefreshesTimestamp(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	editCode := repo.items[created.ID].EditCode

	svc.now = func() time.Time { return base.Add(48 * time.Hour) }
	view, err := svc.Update(context.Background(), created.ID.String(), editCode, validRequest())
	require.NoError(t, err)
	assert.Equal(t, base.Add(48*time.Hour), view.CreatedAt)
}

func TestUpdate_ValidatesBeforeAuthorization(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Category = "GARDENING"
	_, err = svc.Update(context.Background(), created.ID.String(), "whatever", req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr, "malformed input rejected before the edit code is examined")
}

func TestDelete_Lifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	editCode := repo.items[created.ID].EditCode

	err = svc.Delete(context.Background(), created.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidEditCode)

	require.NoError(t, svc.Delete(context.Background(), created.ID.String(), editCode))

	_, err = svc.GetByID(context.Background(), created.ID.String())
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	err = svc.Delete(context.Background(), created.ID.String(), editCode)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound, "second delete reports not-found")
}

func TestList_PaginationBoundsNeverReachStore(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	cases := []struct {
		page, size int
		field      string
	}{
		{-1, 10, "page"},
		{0, 0, "size"},
		{0, 101, "size"},
	}
	for _, tc := range cases {
		_, err := svc.List(context.Background(), "", "", "", tc.page, tc.size)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, tc.field, vErr.Field)
	}
	assert.Zero(t, repo.listPages, "rejected pagination must not reach the store")
}

func TestList_MalformedDateRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.List(context.Background(), "", "not-a-date", "", 0, 10)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "dateAfter", vErr.Field)
	assert.Zero(t, repo.listPages)
}

func TestList_InvalidCategoryRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.List(context.Background(), "GARDENING", "", "", 0, 10)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
	assert.Zero(t, repo.listPages, "malformed filters never fall back to unfiltered")
}

func TestList_DispatchesAllEightShapes(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})
	ctx := context.Background()

	cases := []struct {
		name             string
		cat, after, kw   string
		expected         string
	}{
		{"none", "", "", "", "none"},
		{"category", "HOUSING", "", "", "category"},
		{"after", "", "2026-08-01T00:00:00", "", "after"},
		{"keyword", "", "", "room", "keyword"},
		{"category+after", "HOUSING", "2026-08-01T00:00:00", "", "category+after"},
		{"category+keyword", "HOUSING", "", "room", "category+keyword"},
		{"after+keyword", "", "2026-08-01T00:00:00", "room", "after+keyword"},
		{"all", "HOUSING", "2026-08-01T00:00:00", "room", "category+after+keyword"},
	}
	for _, tc := range cases {
		_, err := svc.List(ctx, tc.cat, tc.after, tc.kw, 0, 10)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.expected, repo.lastShape, tc.name)
	}
}

func TestList_PageMetadataPassedThroughVerbatim(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
	}

	result, err := svc.List(ctx, "", "", "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PageNumber)
	assert.Equal(t, 2, result.PageSize)
	assert.Equal(t, int64(5), result.TotalElements)
	assert.Equal(t, 3, result.TotalPages)
	assert.False(t, result.Last)
	assert.Len(t, result.Content, 2)
}

func TestCleanupExpired_FixedClockBoundary(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})

	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	oldID := uuid.New()
	freshID := uuid.New()
	repo.items[oldID] = &model.Announcement{ID: oldID, CreatedAt: now.Add(-31 * 24 * time.Hour), EditCode: "x"}
	repo.items[freshID] = &model.Announcement{ID: freshID, CreatedAt: now.Add(-29 * 24 * time.Hour), EditCode: "y"}

	require.NoError(t, svc.CleanupExpired(context.Background()))

	require.NotNil(t, repo.sweptAt)
	assert.Equal(t, now.Add(-retentionPeriod), *repo.sweptAt)
	assert.NotContains(t, repo.items, oldID)
	assert.Contains(t, repo.items, freshID)
}

func TestEndToEnd_CreateGetUpdateDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{})
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	editCode := repo.items[created.ID].EditCode

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Category, got.Category)

	req := validRequest()
	req.Title = "Room for rent, updated"
	_, err = svc.Update(ctx, created.ID.String(), uuid.NewString(), req)
	assert.ErrorIs(t, err, ErrInvalidEditCode)

	updated, err := svc.Update(ctx, created.ID.String(), editCode, req)
	require.NoError(t, err)
	assert.Equal(t, "Room for rent, updated", updated.Title)

	require.NoError(t, svc.Delete(ctx, created.ID.String(), editCode))

	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
}
