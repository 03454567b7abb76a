package services

import (
	"context"
	"errors"
	"testing"

	"github.com/passvault/passvault/internal/common"
)

func TestNoteService_CreateDefaultsCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(nil, newFakeRepoManager(), testLogger())

	created, err := svc.Create(ctx, "user-1", NoteInput{
		Title:   "Recovery codes",
		Content: "one two three",
	}, ClientMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Category != "personal" {
		t.Errorf("expected default category, got %q", created.Category)
	}
}

func TestNoteService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(nil, newFakeRepoManager(), testLogger())

	if _, err := svc.Create(ctx, "user-1", NoteInput{Content: "x"}, ClientMeta{}); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("missing title: expected ErrorValidation, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", NoteInput{Title: "x"}, ClientMeta{}); !errors.Is(err, common.ErrorValidation) {
		t.Errorf("missing content: expected ErrorValidation, got %v", err)
	}
}

func TestNoteService_OwnershipScoping(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(nil, newFakeRepoManager(), testLogger())

	created, err := svc.Create(ctx, "owner", NoteInput{
		Title: "Recovery codes", Content: "one two three",
	}, ClientMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Get(ctx, "intruder", created.ID, ClientMeta{}); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("get: expected ErrorNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "intruder", created.ID, ClientMeta{}); !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("delete: expected ErrorNotFound, got %v", err)
	}
}

func TestNoteService_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(nil, newFakeRepoManager(), testLogger())

	created, err := svc.Create(ctx, "user-1", NoteInput{
		Title: "Recovery codes", Content: "one two three",
	}, ClientMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(ctx, "user-1", created.ID, NoteInput{
		Title: "Recovery codes", Content: "four five six", Category: "work", Pinned: true,
	}, ClientMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Content != "four five six" || updated.Category != "work" || !updated.Pinned {
		t.Errorf("update not applied: %+v", updated)
	}

	notes, err := svc.List(ctx, "user-1", ClientMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("expected 1 note, got %d", len(notes))
	}
}

func TestNoteService_ReadsAreAudited(t *testing.T) {
	// Note reads leave the same audit trail as credential reads.
	ctx := context.Background()
	m := newFakeRepoManager()
	svc := NewNoteService(nil, m, testLogger())

	created, err := svc.Create(ctx, "user-1", NoteInput{
		Title: "Recovery codes", Content: "one two three",
	}, ClientMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", created.ID, ClientMeta{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.List(ctx, "user-1", ClientMeta{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := m.audit.ListByUser(ctx, "user-1", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 audit events, got %d", len(events))
	}
	for _, e := range events {
		if e.Entity != "note" {
			t.Errorf("unexpected entity %q", e.Entity)
		}
	}
	if events[0].Action != "read" || events[1].Action != "read" || events[2].Action != "create" {
		t.Errorf("unexpected event order: %q, %q, %q",
			events[0].Action, events[1].Action, events[2].Action)
	}
}
