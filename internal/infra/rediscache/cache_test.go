package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

func TestCache_UnreachableServerDegradesToMisses(t *testing.T) {
	// Nothing listens here; every operation must fail soft.
	cache := New(domain.CacheConfig{Addr: "127.0.0.1:1", DB: 15})

	cache.Set(context.Background(), "PROJ123__myapp", map[string]string{"DEBUG": "true"}, time.Minute)
	vars, ok := cache.Get(context.Background(), "PROJ123__myapp")

	assert.False(t, ok)
	assert.Nil(t, vars)
}
