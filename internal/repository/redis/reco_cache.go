package redis

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"shopReco/domain"
	"shopReco/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const recoKeyPrefix = "reco:v1"

// RecoCache keeps assembled recommendation responses in redis. It is
// best-effort: every failure is reported as a miss so the pipeline always
// has the final word.
type RecoCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecoCache(client *redis.Client, ttl time.Duration) *RecoCache {
	return &RecoCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RecoCache) Get(ctx context.Context, session domain.Session) (domain.Recommendations, bool) {
	val, err := c.client.Get(ctx, recoCacheKey(session)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("reco cache get failed", "session", session.SessionID, err)
		}
		return domain.Recommendations{}, false
	}

	var recs domain.Recommendations
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		logger.Warn("reco cache entry corrupt", "session", session.SessionID, err)
		return domain.Recommendations{}, false
	}

	return recs, true
}

func (c *RecoCache) Set(ctx context.Context, session domain.Session, recs domain.Recommendations) {
	raw, err := json.Marshal(recs)
	if err != nil {
		logger.Warn("failed to marshal recommendations for cache", "session", session.SessionID, err)
		return
	}

	if err := c.client.Set(ctx, recoCacheKey(session), raw, c.ttl).Err(); err != nil {
		logger.Warn("reco cache set failed", "session", session.SessionID, err)
	}
}

// recoCacheKey folds the aid sequence into the key so a session that
// gained events misses cleanly instead of serving stale lists. The aid
// sequence is the only input the pipeline output depends on.
func recoCacheKey(session domain.Session) string {
	h := fnv.New64a()
	var buf [8]byte
	for _, ev := range session.Events {
		binary.LittleEndian.PutUint64(buf[:], uint64(ev.Aid))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%s:%d:%x", recoKeyPrefix, session.SessionID, h.Sum64())
}
