package main

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

// setupStaticFiles serves the embedded frontend
func setupStaticFiles(router *gin.Engine) {
	webRoot, err := fs.Sub(webFS, "web")
	if err != nil {
		panic("web subdirectory missing from embedded assets: " + err.Error())
	}

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path

		// API routes are handled elsewhere
		if len(urlPath) >= 4 && urlPath[:4] == "/api" {
			c.JSON(404, gin.H{"error": "API endpoint not found"})
			return
		}

		cleanPath := path.Clean(urlPath)
		if cleanPath == "/" {
			cleanPath = "index.html"
		} else {
			cleanPath = cleanPath[1:]
		}

		file, err := webRoot.Open(cleanPath)
		if err != nil {
			// Fall back to index.html
			file, err = webRoot.Open("index.html")
			if err != nil {
				c.String(http.StatusNotFound, "404 page not found")
				return
			}
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			c.String(http.StatusInternalServerError, "Error reading asset")
			return
		}

		contentType := "text/html; charset=utf-8"
		switch path.Ext(cleanPath) {
		case ".js":
			contentType = "application/javascript; charset=utf-8"
		case ".css":
			contentType = "text/css; charset=utf-8"
		case ".json":
			contentType = "application/json; charset=utf-8"
		case ".svg":
			contentType = "image/svg+xml"
		case ".ico":
			contentType = "image/x-icon"
		}

		c.Data(http.StatusOK, contentType, content)
	})
}
