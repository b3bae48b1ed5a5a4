package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SubjectPayloadKey returns the cache key for a hydrated subject payload.
func (r *CacheKeyStruct) SubjectPayloadKey(subjectID int) string {
	return fmt.Sprintf("subject:%d:payload", subjectID)
}

// RateLimitKey returns the fixed-window rate limit counter key for a
// client IP.
func (r *CacheKeyStruct) RateLimitKey(clientIP string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", clientIP, window)
}

var CacheKey = NewCacheKeyStruct()
