package web

import (
	"fmt"
	"log"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/util"
	"golang.org/x/time/rate"
)

// Router starts the bundled HTTP server: the stub auth backend under /api
// and the RSS export of the sample feed.
func Router(conf *util.AppConfig) error {
	log.Printf("Starting stub auth/feed server on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	g := NewRouter(conf, db.GetDB())
	err := g.Run(fmt.Sprintf(":%d", conf.Conf.HttpPort))
	if err != nil {
		return err
	}
	return nil
}

// NewRouter builds the gin engine without binding a port, so tests can
// drive it through httptest.
func NewRouter(conf *util.AppConfig, database *db.DB) *gin.Engine {
	g := gin.Default()
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	// Global rate limiter: 10 requests per second per IP, burst of 20
	globalLimiter := NewRateLimiter(rate.Limit(10), 20)
	g.Use(RateLimitMiddleware(globalLimiter))

	// Auth payloads are tiny; anything bigger is garbage
	maxBodySize := MaxBytesMiddleware(64 * 1024)

	api := g.Group("/api")
	api.POST("/auth/signup", maxBodySize, func(c *gin.Context) {
		HandleSignup(c, database)
	})
	api.POST("/auth/login", maxBodySize, func(c *gin.Context) {
		HandleLogin(c, database)
	})

	// RSS export of the sample feed
	g.GET("/feed", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")

		username := c.Query("username")
		rss, err := GetRSS(conf, database, username)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rss})
		}
	})

	g.GET("/feed/:id", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")
		name := c.Param("id")
		postId, err := uuid.Parse(name)
		if err != nil {
			c.Render(404, render.String{Format: ""})
			return
		}

		rssItem, err := GetRSSItem(conf, database, postId)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rssItem})
		}
	})

	return g
}
