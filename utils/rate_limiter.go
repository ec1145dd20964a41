package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type rateWindow struct {
	start time.Time
	count int
}

// RateLimiter is a fixed-window per-client-IP limiter
type RateLimiter struct {
	Window  time.Duration
	Max     int
	clients cmap.ConcurrentMap[string, rateWindow]
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		Window:  window,
		Max:     max,
		clients: cmap.New[rateWindow](),
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	now := time.Now()
	allowed := true
	rl.clients.Upsert(clientIP, rateWindow{}, func(exists bool, current, _ rateWindow) rateWindow {
		if !exists || now.Sub(current.start) > rl.Window {
			return rateWindow{start: now, count: 1}
		}
		current.count++
		allowed = current.count <= rl.Max
		return current
	})
	return allowed
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
