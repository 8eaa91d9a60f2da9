package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/mindloop/pkg/embedded"
	"github.com/gin-gonic/gin"
)

// Index serves the single-page app
func Index(c *gin.Context) {
	serveAsset(c, "text/html; charset=utf-8", embedded.IndexHTML)
}

// ServiceWorker serves the offline cache worker. It only caches GET requests
// outside /api/.
func ServiceWorker(c *gin.Context) {
	c.Header("Service-Worker-Allowed", "/")
	serveAsset(c, "application/javascript; charset=utf-8", embedded.ServiceWorkerJS)
}

// Manifest serves the PWA manifest
func Manifest(c *gin.Context) {
	serveAsset(c, "application/manifest+json", embedded.ManifestJSON)
}

func serveAsset(c *gin.Context, contentType string, body []byte) {
	c.Header(headerCacheControl, cacheStaticAssets)
	c.Data(http.StatusOK, contentType, body)
}
