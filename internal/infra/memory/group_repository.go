package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"geotrivia-service/internal/domain"
)

// GroupLoader fetches question-group content from a backing store (e.g.,
// Postgres, or the built-in catalog).
type GroupLoader interface {
	LoadGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error)
	LoadGroups(ctx context.Context) ([]domain.QuestionGroup, error)
}

// GroupRepository caches groups with TTL to avoid repeated loader hits.
type GroupRepository struct {
	loader GroupLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedGroup
	list  cachedList
}

type cachedGroup struct {
	group     domain.QuestionGroup
	expiresAt time.Time
}

type cachedList struct {
	groups    []domain.QuestionGroup
	expiresAt time.Time
}

func NewGroupRepository(loader GroupLoader, ttl time.Duration) *GroupRepository {
	return &GroupRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedGroup),
	}
}

func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[groupID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.group, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(groupID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[groupID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.group, nil
		}
		r.mu.RUnlock()

		group, err := r.loader.LoadGroup(ctx, groupID)
		if err != nil {
			return domain.QuestionGroup{}, err
		}

		r.mu.Lock()
		r.cache[groupID] = cachedGroup{group: group, expiresAt: now.Add(r.ttlWithJitter())}
		r.mu.Unlock()
		return group, nil
	})
	if err != nil {
		return domain.QuestionGroup{}, err
	}
	return result.(domain.QuestionGroup), nil
}

// ListGroups returns the ordered group list, cached as a whole so the
// ordering always reflects one loader read.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]domain.QuestionGroup, error) {
	now := r.clock()

	r.mu.RLock()
	if r.list.groups != nil && r.list.expiresAt.After(now) {
		groups := r.list.groups
		r.mu.RUnlock()
		return groups, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("__list__", func() (interface{}, error) {
		groups, err := r.loader.LoadGroups(ctx)
		if err != nil {
			return nil, err
		}
		expires := r.clock().Add(r.ttlWithJitter())
		r.mu.Lock()
		r.list = cachedList{groups: groups, expiresAt: expires}
		for _, g := range groups {
			r.cache[g.ID] = cachedGroup{group: g, expiresAt: expires}
		}
		r.mu.Unlock()
		return groups, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.QuestionGroup), nil
}

func (r *GroupRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticGroupLoader serves groups from an in-memory ordered list (the
// built-in catalog, or fixtures in tests).
type StaticGroupLoader struct {
	ordered []domain.QuestionGroup
	byID    map[string]domain.QuestionGroup
}

func NewStaticGroupLoader(groups []domain.QuestionGroup) *StaticGroupLoader {
	byID := make(map[string]domain.QuestionGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	return &StaticGroupLoader{ordered: groups, byID: byID}
}

func (l *StaticGroupLoader) LoadGroup(_ context.Context, groupID string) (domain.QuestionGroup, error) {
	if group, ok := l.byID[groupID]; ok {
		return group, nil
	}
	return domain.QuestionGroup{}, domain.ErrGroupNotFound
}

func (l *StaticGroupLoader) LoadGroups(_ context.Context) ([]domain.QuestionGroup, error) {
	return append([]domain.QuestionGroup(nil), l.ordered...), nil
}
