package storage //nolint:testpackage

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore_Keys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { client.Close() })

	s := NewRedisStore(client, "")
	assert.Equal(t, "levelforge:level9", s.Key(9))
	assert.Equal(t, "levelforge:levels", s.indexKey())

	custom := NewRedisStore(client, "game:")
	assert.Equal(t, "game:level12", custom.Key(12))
}
