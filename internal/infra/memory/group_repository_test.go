package memory

import (
	"context"
	"testing"
	"time"

	"geotrivia-service/internal/catalog"
	"geotrivia-service/internal/domain"
)

func TestGroupRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		GroupLoader: NewStaticGroupLoader(catalog.BuiltinGroups()),
	}
	repo := NewGroupRepository(loader, time.Minute)

	if _, err := repo.GetGroup(context.Background(), "african-explorer"); err != nil {
		t.Fatalf("get group: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetGroup(context.Background(), "african-explorer"); err != nil {
		t.Fatalf("get group 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestGroupRepositoryListsInOrder(t *testing.T) {
	loader := &countingLoader{
		GroupLoader: NewStaticGroupLoader(catalog.BuiltinGroups()),
	}
	repo := NewGroupRepository(loader, time.Minute)

	groups, err := repo.ListGroups(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(groups) != 2 || groups[0].ID != "african-explorer" || groups[1].ID != "coastal-sprint" {
		t.Fatalf("expected insertion order, got %v", groupIDs(groups))
	}

	// Listing warms the per-group cache.
	if _, err := repo.GetGroup(context.Background(), "coastal-sprint"); err != nil {
		t.Fatalf("get after list: %v", err)
	}
	if loader.listCalls != 1 || loader.calls != 0 {
		t.Fatalf("expected one list load and no single loads, got list=%d single=%d", loader.listCalls, loader.calls)
	}
}

func TestGroupRepositoryNotFound(t *testing.T) {
	repo := NewGroupRepository(NewStaticGroupLoader(nil), time.Minute)
	if _, err := repo.GetGroup(context.Background(), "nope"); err != domain.ErrGroupNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

type countingLoader struct {
	GroupLoader
	calls     int
	listCalls int
}

func (l *countingLoader) LoadGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	l.calls++
	return l.GroupLoader.LoadGroup(ctx, groupID)
}

func (l *countingLoader) LoadGroups(ctx context.Context) ([]domain.QuestionGroup, error) {
	l.listCalls++
	return l.GroupLoader.LoadGroups(ctx)
}

func groupIDs(groups []domain.QuestionGroup) []string {
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids
}
