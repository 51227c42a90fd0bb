package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRateLimiter limita la creación de sesiones por cliente para
// evitar abuso del endpoint público. Sin Redis configurado no hay
// limiter y todo pasa.
type SessionRateLimiter interface {
	Allow(key string) bool
}

// Contador por ventana fija: la primera llamada de la ventana fija el
// TTL, las siguientes solo incrementan.
const redisSessionAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisSessionRateLimiter struct {
	client        redisEvaler
	windowSeconds int
	max           int
	prefix        string
	opTimeout     time.Duration
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisSessionRateLimiter(client *redis.Client, window time.Duration, max int) SessionRateLimiter {
	if client == nil {
		return nil
	}
	if window < time.Second {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisSessionRateLimiter{
		client:        client,
		windowSeconds: int(window / time.Second),
		max:           max,
		prefix:        "therapy:rl:",
		opTimeout:     500 * time.Millisecond,
	}
}

// Allow cuenta un intento dentro de la ventana. Las keys son IPs de
// cliente, se recortan pero no se tocan. Ante error de Redis preferimos
// dejar pasar antes que bloquear sesiones legítimas.
func (l *redisSessionRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.opTimeout)
	defer cancel()

	count, err := l.client.Eval(ctx, redisSessionAllowScript, []string{l.prefix + key}, l.windowSeconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
