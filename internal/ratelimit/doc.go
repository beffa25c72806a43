// Package ratelimit enforces per-client request limits for the study tools.
//
// RedisLimiter keeps a sliding one-minute window per key in a Redis sorted set,
// so limits hold across server replicas. NoopLimiter is used when Redis is not
// configured.
package ratelimit
