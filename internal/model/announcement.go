package model

import (
	"time"

	"github.com/google/uuid"

	"classifieds-hub/internal/category"
)

type Contact struct {
	Email string  `db:"contact_email" json:"email"`
	Phone *string `db:"contact_phone" json:"phone,omitempty"`
}

// Announcement is the persisted classified listing. EditCode is the
// owner's write-authorization secret and never leaves the server after
// the confirmation message sent at creation.
type Announcement struct {
	ID        uuid.UUID         `db:"id" json:"id"`
	Title     string            `db:"title" json:"title"`
	Content   string            `db:"content" json:"content"`
	Category  category.Category `db:"category" json:"category"`
	Contact   Contact           `json:"contact"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	EditCode  string            `db:"edit_code" json:"-"`
}
