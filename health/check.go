package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/time/rate"
)

// Func is a single health check returning an error while the checked
// resource is unavailable.
type Func func(ctx context.Context) error

// PingFunc adapts an arbitrary ping operation into a check.
type PingFunc func(ctx context.Context) error

// DBPinger captures the subset of *sql.DB the database check needs.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// MongoPinger captures the subset of the MongoDB client the mongo
// check needs.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// RedisPinger captures the subset of the go-redis client the redis
// check needs. Both *redis.Client and redis.UniversalClient values
// satisfy it.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// NewPingCheck wraps fn with standardised naming and error handling so
// it can feed the probe endpoints.
func NewPingCheck(name string, fn PingFunc) Func {
	return func(ctx context.Context) error {
		if fn == nil {
			return nilDependencyError(name, "ping function")
		}
		if err := fn(contextOrBackground(ctx)); err != nil {
			return fmt.Errorf("%s check failed: %w", name, err)
		}
		return nil
	}
}

// NewDBPingCheck verifies connectivity to an SQL database such as
// PostgreSQL through its PingContext method.
func NewDBPingCheck(name string, db DBPinger) Func {
	return func(ctx context.Context) error {
		if db == nil {
			return nilDependencyError(name, "db client")
		}
		if err := db.PingContext(contextOrBackground(ctx)); err != nil {
			return fmt.Errorf("%s check failed: %w", name, err)
		}
		return nil
	}
}

// NewMongoPingCheck pings MongoDB using the provided client. A nil
// readPref defaults to the primary.
func NewMongoPingCheck(client MongoPinger, readPref *readpref.ReadPref) Func {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("mongo check: client is nil")
		}

		rp := readPref
		if rp == nil {
			rp = readpref.Primary()
		}

		if err := client.Ping(contextOrBackground(ctx), rp); err != nil {
			return fmt.Errorf("mongo check failed: %w", err)
		}
		return nil
	}
}

// NewRedisPingCheck pings a redis server using the provided client.
func NewRedisPingCheck(client RedisPinger) Func {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("redis check: client is nil")
		}
		if err := client.Ping(contextOrBackground(ctx)).Err(); err != nil {
			return fmt.Errorf("redis check failed: %w", err)
		}
		return nil
	}
}

// NewThrottledCheck limits how often check actually runs: at most once
// per the given interval, replaying the most recent outcome in between.
// Useful in front of expensive checks hit by aggressive probe
// schedules. An interval of zero or less disables the throttle.
func NewThrottledCheck(check Func, every time.Duration) Func {
	if check == nil {
		return func(context.Context) error {
			return errors.New("throttled check: check is nil")
		}
	}

	var (
		mu      sync.Mutex
		limiter = rate.NewLimiter(rate.Every(every), 1)
		lastErr error
	)
	return func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()

		if limiter.Allow() {
			lastErr = check(ctx)
		}
		return lastErr
	}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func nilDependencyError(name, dependency string) error {
	return fmt.Errorf("%s check: %s is nil", name, dependency)
}
