package events

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
)

func TestCategoryLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"team", "food"} {
		if _, err := svc.CreateCategory(ctx, CreateCategoryDTO{Name: name}); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	listed, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].Name != "food" || listed[1].Name != "team" {
		t.Fatalf("expected name order, got %+v", listed)
	}

	loaded, err := svc.GetCategory(ctx, listed[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	rename := "street food"
	renamed, err := svc.UpdateCategory(ctx, loaded.ID, UpdateCategoryDTO{Name: &rename})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.ID != loaded.ID || renamed.Name != rename {
		t.Fatalf("rename must keep the id, got %+v", renamed)
	}

	if err := svc.DeleteCategory(ctx, loaded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = svc.GetCategory(ctx, loaded.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)

	err = svc.DeleteCategory(ctx, loaded.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCategoryNamesAreUnique(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	food, err := svc.CreateCategory(ctx, CreateCategoryDTO{Name: "food"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	team, err := svc.CreateCategory(ctx, CreateCategoryDTO{Name: "team"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.CreateCategory(ctx, CreateCategoryDTO{Name: "food"})
	assertCode(t, err, pkgerrors.CodeConflict)

	taken := "food"
	_, err = svc.UpdateCategory(ctx, team.ID, UpdateCategoryDTO{Name: &taken})
	assertCode(t, err, pkgerrors.CodeConflict)

	// renaming to its own current name is a no-op, not a conflict
	same := "food"
	kept, err := svc.UpdateCategory(ctx, food.ID, UpdateCategoryDTO{Name: &same})
	if err != nil {
		t.Fatalf("self rename: %v", err)
	}
	if kept.Name != "food" {
		t.Fatalf("unexpected name %q", kept.Name)
	}

	_, err = svc.CreateCategory(ctx, CreateCategoryDTO{Name: "   "})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCategoryRenameLeavesEventsUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryDTO{Name: "musique"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	event := mustCreateEvent(t, svc, CreateEventDTO{
		Title: "Concert", Date: time.Date(2026, time.October, 10, 20, 0, 0, 0, time.UTC), Category: "musique",
	})

	rename := "concerts"
	if _, err := svc.UpdateCategory(ctx, category.ID, UpdateCategoryDTO{Name: &rename}); err != nil {
		t.Fatalf("rename: %v", err)
	}

	fresh, err := svc.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if fresh.Category != "musique" {
		t.Fatalf("event category is a label, expected musique got %q", fresh.Category)
	}
}
