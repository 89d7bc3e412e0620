package utils

import (
	"strconv"
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NextID returns a timestamp-derived identifier, optionally prefixed
// ("order-1723651200123"). Concurrent callers always get distinct values:
// when two calls land on the same millisecond the later one is bumped
// forward.
func NextID(prefix string) string {
	for {
		now := time.Now().UnixMilli()
		last := lastID.Load()
		if now <= last {
			now = last + 1
		}
		if lastID.CompareAndSwap(last, now) {
			if prefix == "" {
				return strconv.FormatInt(now, 10)
			}
			return prefix + "-" + strconv.FormatInt(now, 10)
		}
	}
}
