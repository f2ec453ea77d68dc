package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"classifieds-hub/internal/category"
	"classifieds-hub/internal/model"
	"classifieds-hub/internal/repository"
)

type announcementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) repository.AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

var _ repository.AnnouncementRepository = (*announcementRepository)(nil)

const announcementColumns = `
	id,
	title,
	content,
	category,
	contact_email,
	contact_phone,
	created_at,
	edit_code
`

// The list surface is a fixed set of filter shapes; each WHERE clause
// below is one of them.
const (
	whereCategory             = ` WHERE category = $1`
	whereCreatedAfter         = ` WHERE created_at > $1`
	whereKeyword              = ` WHERE title ILIKE '%' || $1 || '%'`
	whereCategoryCreatedAfter = ` WHERE category = $1 AND created_at > $2`
	whereCategoryKeyword      = ` WHERE category = $1 AND title ILIKE '%' || $2 || '%'`
	whereCreatedAfterKeyword  = ` WHERE created_at > $1 AND title ILIKE '%' || $2 || '%'`
	whereAllFilters           = ` WHERE category = $1 AND created_at > $2 AND title ILIKE '%' || $3 || '%'`
)

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	item, err := scanAnnouncement(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Save inserts the announcement or replaces the full row when the
// identifier already exists. A single statement, so the write is atomic.
func (r *announcementRepository) Save(ctx context.Context, item *model.Announcement) error {
	query := `
		INSERT INTO announcements (
			id, title, content, category,
			contact_email, contact_phone,
			created_at, edit_code
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    content = EXCLUDED.content,
		    category = EXCLUDED.category,
		    contact_email = EXCLUDED.contact_email,
		    contact_phone = EXCLUDED.contact_phone,
		    created_at = EXCLUDED.created_at,
		    edit_code = EXCLUDED.edit_code
	`

	_, err := r.pool.Exec(
		ctx,
		query,
		item.ID,
		item.Title,
		item.Content,
		string(item.Category),
		item.Contact.Email,
		item.Contact.Phone,
		item.CreatedAt,
		item.EditCode,
	)
	return err
}

func (r *announcementRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func (r *announcementRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *announcementRepository) List(ctx context.Context, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, ``, nil, page)
}

func (r *announcementRepository) ListByCategory(ctx context.Context, cat category.Category, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, whereCategory, []any{string(cat)}, page)
}

func (r *announcementRepository) ListCreatedAfter(ctx context.Context, after time.Time, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, whereCreatedAfter, []any{after}, page)
}

func (r *announcementRepository) ListByKeyword(ctx context.Context, keyword string, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, whereKeyword, []any{escapeLike(keyword)}, page)
}

func (r *announcementRepository) ListByCategoryCreatedAfter(ctx context.Context, cat category.Category, after time.Time, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, whereCategoryCreatedAfter, []any{string(cat), after}, page)
}

func (r *announcementRepository) ListByCategoryKeyword(ctx context.Context, cat category.Category, keyword string, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, whereCategoryKeyword, []any{string(cat), escapeLike(keyword)}, page)
}

func (r *announcementRepository) ListCreatedAfterKeyword(ctx context.Context, after time.Time, keyword string, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, whereCreatedAfterKeyword, []any{after, escapeLike(keyword)}, page)
}

func (r *announcementRepository) ListByCategoryCreatedAfterKeyword(ctx context.Context, cat category.Category, after time.Time, keyword string, page repository.PageRequest) (*repository.Page, error) {
	return r.listPage(ctx, whereAllFilters, []any{string(cat), after, escapeLike(keyword)}, page)
}

func (r *announcementRepository) listPage(ctx context.Context, where string, args []any, page repository.PageRequest) (*repository.Page, error) {
	query := fmt.Sprintf(
		`SELECT `+announcementColumns+`
		   FROM announcements%s
		  ORDER BY created_at DESC
		  LIMIT $%d OFFSET $%d`,
		where,
		len(args)+1,
		len(args)+2,
	)

	queryArgs := append(append([]any{}, args...), page.Size, page.Page*page.Size)
	rows, err := r.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.Announcement, 0, page.Size)
	for rows.Next() {
		item, scanErr := scanAnnouncement(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM announcements` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}

	return &repository.Page{
		Items:         items,
		Number:        page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page.Page+1 >= totalPages,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(src rowScanner) (*model.Announcement, error) {
	item := &model.Announcement{}
	var cat string
	if err := src.Scan(
		&item.ID,
		&item.Title,
		&item.Content,
		&cat,
		&item.Contact.Email,
		&item.Contact.Phone,
		&item.CreatedAt,
		&item.EditCode,
	); err != nil {
		return nil, err
	}
	item.Category = category.Category(cat)
	return item, nil
}
