package service

import (
	"context"
	"errors"
	"testing"

	"Backoffice/internal/repo"
	"Backoffice/internal/validation"
)

func newTaskService() *TaskService {
	return NewTaskService(repo.NewMemTaskRepo(), nil, nil, discardLogger())
}

func TestTaskCreateRoundTrip(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Write report", "Quarterly numbers", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected ID to be set")
	}
	if created.Completed {
		t.Fatalf("expected completed to default to false")
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Write report" || got.Description != "Quarterly numbers" {
		t.Fatalf("unexpected fields: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected server-set timestamps")
	}
}

func TestTaskCreateBlankTitle(t *testing.T) {
	svc := newTaskService()
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), title, "desc", false)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("title %q: expected ValidationError, got %v", title, err)
		}
		if verr.Fields["title"] != validation.MsgTitleRequired {
			t.Fatalf("title %q: unexpected message %q", title, verr.Fields["title"])
		}
	}
}

func TestTaskUpdate(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Write report", "", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, "Write report", "Done early", true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Description != "Done early" {
		t.Fatalf("unexpected fields after update: %+v", updated)
	}

	if _, err := svc.Update(ctx, created.ID, "  ", "x", false); err == nil {
		t.Fatalf("expected validation error for blank title")
	}

	if _, err := svc.Update(ctx, 999, "Title", "", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskDelete(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Write report", "", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestTaskListNewestFirst(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := svc.Create(ctx, title, "", false); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(list))
	}
	want := []string{"third", "second", "first"}
	for i, title := range want {
		if list[i].Title != title {
			t.Fatalf("position %d: expected %s, got %s", i, title, list[i].Title)
		}
	}
}
