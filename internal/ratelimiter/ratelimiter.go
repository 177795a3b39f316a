package ratelimiter

import "time"

// Limiter decides whether a client, keyed by IP, may make another request.
// When it may not, the returned duration says how long to wait.
type Limiter interface {
	Allow(ip string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
