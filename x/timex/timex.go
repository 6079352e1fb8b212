package timex

import "time"

var boot = time.Now()

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// MonoMs returns milliseconds since process start from the monotonic clock.
func MonoMs() int64 { return time.Since(boot).Milliseconds() }

// Ms converts a duration to whole milliseconds, clamped to uint32.
// Negative durations become 0.
func Ms(d time.Duration) uint32 {
	ms := d.Milliseconds()
	switch {
	case ms <= 0:
		return 0
	case ms > int64(^uint32(0)):
		return ^uint32(0)
	}
	return uint32(ms)
}
