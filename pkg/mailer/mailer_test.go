package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"classifieds-hub/internal/category"
	"classifieds-hub/internal/model"
)

func testItem() *model.Announcement {
	return &model.Announcement{
		ID:        uuid.New(),
		Title:     "Room for rent",
		Category:  category.Housing,
		Contact:   model.Contact{Email: "a@b.com"},
		CreatedAt: time.Now().UTC(),
		EditCode:  uuid.NewString(),
	}
}

func TestNotify_SendsToContactAddress(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := New(Config{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	item := testItem()
	if err := m.Notify(context.Background(), item); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if gotFrom != "noreply@example.com" {
		t.Fatalf("unexpected from %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "a@b.com" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}

	body := string(gotMsg)
	for _, want := range []string{item.ID.String(), item.EditCode, "Room for rent", "HOUSING", "30 days"} {
		if !strings.Contains(body, want) {
			t.Fatalf("message body missing %q:\n%s", want, body)
		}
	}
}

func TestNotify_PropagatesSendFailure(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	if err := m.Notify(context.Background(), testItem()); err == nil {
		t.Fatal("expected delivery error")
	}
}

func TestNotify_RejectsMissingRecipient(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587})
	item := testItem()
	item.Contact.Email = ""

	if err := m.Notify(context.Background(), item); err == nil {
		t.Fatal("expected error for empty recipient")
	}
}
