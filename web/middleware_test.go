package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestGetLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(10), 20)

	limiter1 := rl.getLimiter("192.168.1.1")
	limiter2 := rl.getLimiter("192.168.1.1")
	if limiter1 != limiter2 {
		t.Error("getLimiter should return the same limiter for the same IP")
	}

	limiter3 := rl.getLimiter("192.168.1.2")
	if limiter1 == limiter3 {
		t.Error("getLimiter should return different limiters for different IPs")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(rate.Limit(1), 2)
	router := gin.New()
	router.Use(RateLimitMiddleware(rl))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var lastStatus int
	var lastBody string
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		router.ServeHTTP(w, req)
		lastStatus = w.Code
		lastBody = w.Body.String()
	}

	if lastStatus != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after exhausting the burst, got %d", lastStatus)
	}
	if !strings.Contains(lastBody, "Rate limit exceeded") {
		t.Errorf("Expected rate limit error message, got: %s", lastBody)
	}
}

func TestRateLimitMiddlewareDifferentIPs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(rate.Limit(1), 1)
	router := gin.New()
	router.Use(RateLimitMiddleware(rl))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, addr := range []string{"192.168.1.1:12345", "192.168.1.2:12345"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("IP %s should not be limited by another IP's budget, got %d", addr, w.Code)
		}
	}
}

func TestMaxBytesMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(MaxBytesMiddleware(1024))
	router.POST("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	small := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/test", strings.NewReader(strings.Repeat("x", 512)))
	router.ServeHTTP(small, req)
	if small.Code != http.StatusOK {
		t.Errorf("Expected 200 for a small body, got %d", small.Code)
	}

	big := httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/test", strings.NewReader(strings.Repeat("x", 2048)))
	router.ServeHTTP(big, req)
	if big.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for an oversized body, got %d", big.Code)
	}
}
