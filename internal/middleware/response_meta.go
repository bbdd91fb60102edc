package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	metaKey      = "response_meta"
	metaStartKey = "response_meta_start"
)

// WithResponseMeta stamps the request start so handlers can report processing time.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaStartKey, time.Now())
		c.Next()
	}
}

// SetCacheHit records whether the payload was served from the dashboard cache.
func SetCacheHit(c *gin.Context, hit bool) {
	Meta(c)["cache_hit"] = hit
}

// Meta returns the request's metadata map, creating it on first use.
func Meta(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(metaKey); ok {
		if meta, ok := v.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := map[string]interface{}{}
	c.Set(metaKey, meta)
	return meta
}

// ResponseMeta finalises the metadata for the envelope. processing_time_ms is measured
// from WithResponseMeta when it ran, otherwise from since.
func ResponseMeta(c *gin.Context, since time.Time) map[string]interface{} {
	if v, ok := c.Get(metaStartKey); ok {
		if start, ok := v.(time.Time); ok {
			since = start
		}
	}
	meta := Meta(c)
	meta["processing_time_ms"] = time.Since(since).Milliseconds()
	return meta
}
