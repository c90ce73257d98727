package cache

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPipeline answers pipelined commands without a server.
type scriptedPipeline struct {
	expireErr error
	seen      [][]interface{}
}

func (h *scriptedPipeline) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("no network in tests")
	}
}

func (h *scriptedPipeline) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		return errors.New("unexpected single command: " + cmd.Name())
	}
}

func (h *scriptedPipeline) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			h.seen = append(h.seen, cmd.Args())
			switch c := cmd.(type) {
			case *redis.IntCmd:
				c.SetVal(1)
			case *redis.BoolCmd:
				if h.expireErr != nil {
					c.SetErr(h.expireErr)
					return h.expireErr
				}
				c.SetVal(true)
			}
		}
		return nil
	}
}

func newScriptedClient(h *scriptedPipeline) *RedisClient {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(h)
	return &RedisClient{Client: client, locker: redislock.New(client)}
}

func TestIncrSetsTTLInSameTransaction(t *testing.T) {
	h := &scriptedPipeline{}
	c := newScriptedClient(h)
	defer c.Close()

	n, err := c.Incr(context.Background(), "ratelimit:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var names []string
	var expire []interface{}
	for _, args := range h.seen {
		names = append(names, args[0].(string))
		if args[0] == "expire" {
			expire = args
		}
	}
	assert.Contains(t, names, "multi")
	assert.Contains(t, names, "incr")
	require.NotNil(t, expire)
	assert.Equal(t, "NX", expire[len(expire)-1])
}

func TestIncrReportsExpireFailure(t *testing.T) {
	h := &scriptedPipeline{expireErr: errors.New("READONLY")}
	c := newScriptedClient(h)
	defer c.Close()

	_, err := c.Incr(context.Background(), "ratelimit:1.2.3.4", time.Minute)
	assert.Error(t, err)
}

func TestIncrWithoutTTL(t *testing.T) {
	h := &scriptedPipeline{}
	c := newScriptedClient(h)
	defer c.Close()

	_, err := c.Incr(context.Background(), "counter", 0)
	require.NoError(t, err)
	for _, args := range h.seen {
		assert.NotEqual(t, "expire", args[0])
	}
}
