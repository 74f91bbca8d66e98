package redis

import (
	"testing"

	"shopReco/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestPoolSettings_Defaults(t *testing.T) {
	poolSize, minIdle := poolSettings(config.RedisConfig{})

	assert.Equal(t, 10, poolSize)
	assert.Equal(t, 5, minIdle)
}

func TestPoolSettings_FromConfig(t *testing.T) {
	poolSize, minIdle := poolSettings(config.RedisConfig{PoolSize: 32, MinIdleConns: 8})

	assert.Equal(t, 32, poolSize)
	assert.Equal(t, 8, minIdle)
}

func TestPoolSettings_IdleFloorCappedAtPool(t *testing.T) {
	poolSize, minIdle := poolSettings(config.RedisConfig{PoolSize: 4, MinIdleConns: 9})

	assert.Equal(t, 4, poolSize)
	assert.Equal(t, 4, minIdle)
}
