package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"geotrivia-service/internal/domain"
)

// GroupLoader fetches question-group content from a backing store (e.g.,
// Postgres, or the built-in catalog).
type GroupLoader interface {
	LoadGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error)
	LoadGroups(ctx context.Context) ([]domain.QuestionGroup, error)
}

// GroupRepository caches serialized groups in Redis and falls back to the
// loader on a cache miss. Groups are stored as: SET game:group:{groupID} {json}.
type GroupRepository struct {
	client *redis.Client
	loader GroupLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewGroupRepository(client *redis.Client, loader GroupLoader, ttl time.Duration) *GroupRepository {
	return &GroupRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	if group, ok := r.cached(ctx, groupID); ok {
		return group, nil
	}

	result, err, _ := r.sf.Do(groupID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if group, ok := r.cached(ctx, groupID); ok {
			return group, nil
		}

		group, err := r.loader.LoadGroup(ctx, groupID)
		if err != nil {
			return domain.QuestionGroup{}, err
		}
		r.fill(ctx, group)
		return group, nil
	})
	if err != nil {
		return domain.QuestionGroup{}, err
	}
	return result.(domain.QuestionGroup), nil
}

// ListGroups always reads from the loader (ordering lives there) and warms
// the per-group cache on the way out.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]domain.QuestionGroup, error) {
	groups, err := r.loader.LoadGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		r.fill(ctx, group)
	}
	return groups, nil
}

func (r *GroupRepository) cached(ctx context.Context, groupID string) (domain.QuestionGroup, bool) {
	raw, err := r.client.Get(ctx, groupKey(groupID)).Bytes()
	if err != nil {
		return domain.QuestionGroup{}, false
	}
	var group domain.QuestionGroup
	if err := json.Unmarshal(raw, &group); err != nil {
		return domain.QuestionGroup{}, false
	}
	return group, true
}

// fill writes a group into the cache, best-effort: a cache write failure
// never fails the read path.
func (r *GroupRepository) fill(ctx context.Context, group domain.QuestionGroup) {
	raw, err := json.Marshal(group)
	if err != nil {
		return
	}
	_ = r.client.Set(ctx, groupKey(group.ID), raw, r.ttlWithJitter()).Err()
}

func groupKey(groupID string) string {
	return fmt.Sprintf("game:group:%s", groupID)
}

func (r *GroupRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
