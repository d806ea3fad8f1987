package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/trackflow/trackflow/backend/pkg/response"
)

const (
	throttleSweepEvery = 3 * time.Minute
	throttleStaleAfter = 5 * time.Minute
)

// visitor pairs a client's token bucket with the time it was last heard from,
// so idle entries can be swept.
type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// WriteThrottle limits mutating requests per client IP. Reads are never
// throttled; the router attaches this only to the issue and comment
// write routes.
type WriteThrottle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

// NewWriteThrottle builds a throttle allowing rps sustained writes per client
// with bursts up to burst, and starts the idle-visitor sweep.
func NewWriteThrottle(rps float64, burst int) *WriteThrottle {
	t := &WriteThrottle{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go t.sweep()
	return t
}

func (t *WriteThrottle) bucketFor(ip string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.visitors[ip]
	if !ok {
		bucket := rate.NewLimiter(t.rps, t.burst)
		t.visitors[ip] = &visitor{bucket: bucket, lastSeen: time.Now()}
		return bucket
	}

	v.lastSeen = time.Now()
	return v.bucket
}

// sweep drops visitors not seen within throttleStaleAfter.
func (t *WriteThrottle) sweep() {
	for {
		time.Sleep(throttleSweepEvery)
		t.mu.Lock()
		for ip, v := range t.visitors {
			if time.Since(v.lastSeen) > throttleStaleAfter {
				delete(t.visitors, ip)
			}
		}
		t.mu.Unlock()
	}
}

// Middleware rejects the request with 429 once the client's bucket is empty.
func (t *WriteThrottle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.bucketFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, response.Response{
				Code:    http.StatusTooManyRequests,
				Message: "write rate exceeded, retry shortly",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
