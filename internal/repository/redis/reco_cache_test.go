package redis

import (
	"strings"
	"testing"

	"shopReco/domain"

	"github.com/stretchr/testify/assert"
)

func sessionWithAids(id int64, aids ...int64) domain.Session {
	events := make([]domain.Event, 0, len(aids))
	for _, aid := range aids {
		events = append(events, domain.Event{Aid: aid, Type: domain.EventClicks})
	}
	return domain.Session{SessionID: id, Events: events}
}

func TestRecoCacheKey_StablePerHistory(t *testing.T) {
	a := recoCacheKey(sessionWithAids(12899779, 10, 20, 10))
	b := recoCacheKey(sessionWithAids(12899779, 10, 20, 10))
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "reco:v1:12899779:"))
}

func TestRecoCacheKey_SensitiveToHistory(t *testing.T) {
	base := recoCacheKey(sessionWithAids(1, 10, 20))

	assert.NotEqual(t, base, recoCacheKey(sessionWithAids(1, 20, 10)), "order matters")
	assert.NotEqual(t, base, recoCacheKey(sessionWithAids(1, 10, 20, 30)), "new events matter")
	assert.NotEqual(t, base, recoCacheKey(sessionWithAids(2, 10, 20)), "session id matters")
}
