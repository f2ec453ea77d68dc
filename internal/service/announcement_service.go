package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"classifieds-hub/internal/category"
	"classifieds-hub/internal/metrics"
	"classifieds-hub/internal/model"
	"classifieds-hub/internal/repository"
	"classifieds-hub/internal/validator"
)

const (
	listMaxPageSize = 100
	retentionPeriod = 30 * 24 * time.Hour

	// ISO-8601 local date-time, matching the dateAfter query parameter.
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Notifier delivers a confirmation message for a persisted
// announcement. A failure is reported, never retried.
type Notifier interface {
	Notify(ctx context.Context, item *model.Announcement) error
}

type ContactRequest struct {
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

type AnnouncementRequest struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Category string         `json:"category"`
	Contact  ContactRequest `json:"contact"`
}

// AnnouncementResponse is the public view. It never carries the edit code.
type AnnouncementResponse struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Category  category.Category `json:"category"`
	Contact   model.Contact     `json:"contact"`
	CreatedAt time.Time         `json:"created_at"`
}

// PagedAnnouncements mirrors the paging metadata reported by the store.
type PagedAnnouncements struct {
	Content       []*AnnouncementResponse `json:"content"`
	PageNumber    int                     `json:"page_number"`
	PageSize      int                     `json:"page_size"`
	TotalElements int64                   `json:"total_elements"`
	TotalPages    int                     `json:"total_pages"`
	Last          bool                    `json:"last"`
}

type AnnouncementService struct {
	repo     repository.AnnouncementRepository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewAnnouncementService(
	repo repository.AnnouncementRepository,
	notifier Notifier,
	logger *zap.Logger,
) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AnnouncementService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates the request, mints the identifier and edit code,
// persists, and attempts the confirmation delivery. The record stays
// persisted even when delivery fails. The edit code reaches the owner
// only through the confirmation message, never through the response.
func (s *AnnouncementService) Create(ctx context.Context, req AnnouncementRequest) (*AnnouncementResponse, error) {
	s.logger.Info("creating announcement", zap.String("title", req.Title))

	item, err := s.buildAnnouncement(uuid.New(), uuid.NewString(), req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	metrics.AnnouncementsCreated.Inc()
	s.logger.Info("announcement created", zap.String("id", item.ID.String()))

	if err := s.notify(ctx, item); err != nil {
		return nil, err
	}

	return newAnnouncementResponse(item), nil
}

func (s *AnnouncementService) GetByID(ctx context.Context, announcementID string) (*AnnouncementResponse, error) {
	id, err := parseAnnouncementID(announcementID)
	if err != nil {
		return nil, err
	}

	item, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newAnnouncementResponse(item), nil
}

// Update replaces every mutable field and refreshes the timestamp. The
// identifier and edit code carry over unchanged. Request validation runs
// first, then existence, then the edit code comparison, so not-found
// and forbidden stay distinguishable outcomes.
func (s *AnnouncementService) Update(ctx context.Context, announcementID, editCode string, req AnnouncementRequest) (*AnnouncementResponse, error) {
	id, err := parseAnnouncementID(announcementID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("updating announcement", zap.String("id", id.String()))

	next, err := s.buildAnnouncement(id, "", req)
	if err != nil {
		return nil, err
	}

	current, err := s.authorize(ctx, id, editCode)
	if err != nil {
		return nil, err
	}
	next.EditCode = current.EditCode

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	metrics.AnnouncementsUpdated.Inc()
	s.logger.Info("announcement updated", zap.String("id", id.String()))

	if err := s.notify(ctx, next); err != nil {
		return nil, err
	}

	return newAnnouncementResponse(next), nil
}

// Delete removes the announcement permanently after the same
// existence-then-edit-code sequence as Update.
func (s *AnnouncementService) Delete(ctx context.Context, announcementID, editCode string) error {
	id, err := parseAnnouncementID(announcementID)
	if err != nil {
		return err
	}
	s.logger.Info("deleting announcement", zap.String("id", id.String()))

	if _, err := s.authorize(ctx, id, editCode); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	metrics.AnnouncementsDeleted.Inc()
	s.logger.Info("announcement deleted", zap.String("id", id.String()))
	return nil
}

// List validates the pagination bounds and filters, then dispatches to
// exactly one of the eight store query shapes. Paging metadata from the
// store passes through verbatim.
func (s *AnnouncementService) List(ctx context.Context, categoryText, afterText, keywordText string, page, size int) (*PagedAnnouncements, error) {
	if page < 0 {
		return nil, newValidationError("page", "page must be zero or positive")
	}
	if size < 1 {
		return nil, newValidationError("size", "size must be at least 1")
	}
	if size > listMaxPageSize {
		return nil, newValidationError("size", "size cannot exceed %d", listMaxPageSize)
	}

	var after *time.Time
	if trimmed := strings.TrimSpace(afterText); trimmed != "" {
		parsed, err := time.Parse(dateTimeLayout, trimmed)
		if err != nil {
			return nil, newValidationError("dateAfter", "invalid date format, use ISO format (e.g. 2025-10-18T14:33:00)")
		}
		after = &parsed
	}

	var cat *category.Category
	if strings.TrimSpace(categoryText) != "" {
		parsed, err := s.normalizeCategory(categoryText)
		if err != nil {
			return nil, err
		}
		cat = &parsed
	}

	result, err := s.dispatchList(ctx, cat, after, keywordText, repository.PageRequest{Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	content := make([]*AnnouncementResponse, 0, len(result.Items))
	for _, item := range result.Items {
		content = append(content, newAnnouncementResponse(item))
	}

	return &PagedAnnouncements{
		Content:       content,
		PageNumber:    result.Number,
		PageSize:      result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Last:          result.Last,
	}, nil
}

// CleanupExpired removes every announcement older than the retention
// period. The bulk delete is idempotent, so overlapping runs are safe.
func (s *AnnouncementService) CleanupExpired(ctx context.Context) error {
	cutoff := s.now().Add(-retentionPeriod)

	deleted, err := s.repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("retention sweep failed", zap.Error(err))
		return err
	}

	if deleted > 0 {
		metrics.AnnouncementsExpired.Add(float64(deleted))
	}
	s.logger.Info("retention sweep finished",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff),
	)
	return nil
}

func (s *AnnouncementService) buildAnnouncement(id uuid.UUID, editCode string, req AnnouncementRequest) (*model.Announcement, error) {
	cat, err := s.normalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}

	phone := normalizePhone(req.Contact.Phone)
	fields := validator.Announcement(validator.AnnouncementInput{
		Title:   req.Title,
		Content: req.Content,
		Email:   req.Contact.Email,
		Phone:   phone,
	})
	if len(fields) > 0 {
		return nil, &FieldValidationError{Fields: fields}
	}

	return &model.Announcement{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Category: cat,
		Contact: model.Contact{
			Email: req.Contact.Email,
			Phone: phone,
		},
		CreatedAt: s.now().UTC(),
		EditCode:  editCode,
	}, nil
}

func (s *AnnouncementService) normalizeCategory(raw string) (category.Category, error) {
	if strings.TrimSpace(raw) == "" {
		return "", newValidationError("category", "category is required")
	}

	cat, ok := category.Parse(raw)
	if !ok {
		s.logger.Warn("invalid category value", zap.String("category", raw))
		return "", newValidationError("category",
			"invalid category: %q, must be one of: %s", raw, strings.Join(category.Names(), ", "))
	}
	return cat, nil
}

// authorize confirms existence before comparing the supplied edit code,
// so the two failure kinds never collapse into one.
func (s *AnnouncementService) authorize(ctx context.Context, id uuid.UUID, editCode string) (*model.Announcement, error) {
	current, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.EditCode != editCode {
		s.logger.Warn("edit code mismatch", zap.String("id", id.String()))
		return nil, ErrInvalidEditCode
	}
	return current, nil
}

func (s *AnnouncementService) findByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *AnnouncementService) notify(ctx context.Context, item *model.Announcement) error {
	if s.notifier == nil {
		return nil
	}

	if err := s.notifier.Notify(ctx, item); err != nil {
		metrics.NotificationFailures.Inc()
		s.logger.Error("confirmation delivery failed",
			zap.String("id", item.ID.String()),
			zap.Error(err),
		)
		return &NotificationError{Err: err}
	}
	return nil
}

func (s *AnnouncementService) dispatchList(
	ctx context.Context,
	cat *category.Category,
	after *time.Time,
	keyword string,
	page repository.PageRequest,
) (*repository.Page, error) {
	switch {
	case cat != nil && after != nil && keyword != "":
		return s.repo.ListByCategoryCreatedAfterKeyword(ctx, *cat, *after, keyword, page)
	case cat != nil && after != nil:
		return s.repo.ListByCategoryCreatedAfter(ctx, *cat, *after, page)
	case cat != nil && keyword != "":
		return s.repo.ListByCategoryKeyword(ctx, *cat, keyword, page)
	case cat != nil:
		return s.repo.ListByCategory(ctx, *cat, page)
	case after != nil && keyword != "":
		return s.repo.ListCreatedAfterKeyword(ctx, *after, keyword, page)
	case after != nil:
		return s.repo.ListCreatedAfter(ctx, *after, page)
	case keyword != "":
		return s.repo.ListByKeyword(ctx, keyword, page)
	default:
		return s.repo.List(ctx, page)
	}
}

func parseAnnouncementID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, newValidationError("id", "invalid announcement id")
	}
	return id, nil
}

func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*phone)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func newAnnouncementResponse(item *model.Announcement) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:        item.ID,
		Title:     item.Title,
		Content:   item.Content,
		Category:  item.Category,
		Contact:   item.Contact,
		CreatedAt: item.CreatedAt,
	}
}
