package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AttemptSnapshotKey returns the cache key for an attempt's state snapshot.
func (r *CacheKeyStruct) AttemptSnapshotKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:snapshot", attemptID)
}

// AttemptOutcomeKey returns the cache key for an attempt's graded outcome.
func (r *CacheKeyStruct) AttemptOutcomeKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:outcome", attemptID)
}

// StudentActiveAttemptKey returns the cache key for a student's active attempt.
func (r *CacheKeyStruct) StudentActiveAttemptKey(studentID string) string {
	return fmt.Sprintf("student:%s:active_attempt", studentID)
}

var CacheKey = NewCacheKeyStruct()
