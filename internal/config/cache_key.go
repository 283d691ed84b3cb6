package config

import (
	"fmt"
	"strconv"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ExamSessionKey returns the cache key for a user's exam session on a course.
// The key shape is part of the persistence contract: one record per
// (user, course) pair.
func (r *CacheKeyStruct) ExamSessionKey(userID string, courseID int) string {
	return fmt.Sprintf("courseExam:%s:%d", userID, courseID)
}

// ParseExamSessionKey splits a session key back into its (user, course)
// identity. UUID user ids contain no colon, so the last segment is always
// the course id.
func (r *CacheKeyStruct) ParseExamSessionKey(key string) (string, int, bool) {
	rest, ok := strings.CutPrefix(key, "courseExam:")
	if !ok {
		return "", 0, false
	}
	idx := strings.LastIndex(rest, ":")
	if idx <= 0 {
		return "", 0, false
	}
	courseID, err := strconv.Atoi(rest[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:idx], courseID, true
}

// UserSnapshotKey returns the cache key for the last authoritative user record.
func (r *CacheKeyStruct) UserSnapshotKey(userID string) string {
	return fmt.Sprintf("user:%s:snapshot", userID)
}

// ActiveExamSessionsKey returns the set holding all in-progress exam sessions.
func (r *CacheKeyStruct) ActiveExamSessionsKey() string {
	return "exam:active_sessions"
}

// ScheduleChannel returns the PubSub channel for exam schedule invalidation.
func (r *CacheKeyStruct) ScheduleChannel() string {
	return "settings:exam_schedule"
}

var CacheKey = NewCacheKeyStruct()
