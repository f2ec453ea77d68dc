// Package validator checks the field-level constraints of incoming
// announcement data before it reaches the engine.
package validator

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var phonePattern = regexp.MustCompile(`^\+48[0-9]{9}$`)

// AnnouncementInput carries the free-form fields of a create or update
// request. Category is validated separately against the registry.
type AnnouncementInput struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
}

// Announcement returns a field name to message map for every violated
// constraint, or nil when the input is clean.
func Announcement(in AnnouncementInput) map[string]string {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 200).Error("title cannot exceed 200 characters"),
		),
		validation.Field(&in.Content,
			validation.Required.Error("content is required"),
			validation.RuneLength(1, 1500).Error("content cannot exceed 1500 characters"),
		),
		validation.Field(&in.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&in.Phone,
			validation.Match(phonePattern).Error("phone number must be in format +48123456789"),
		),
	)
	if err == nil {
		return nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	fields := make(map[string]string, len(errs))
	for name, fieldErr := range errs {
		fields[name] = fieldErr.Error()
	}
	return fields
}
