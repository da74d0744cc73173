package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/cache"
)

// githubAPIBaseURL is a variable so tests can point it at a local server.
var githubAPIBaseURL = "https://api.github.com"

var githubHTTPClient = &http.Client{Timeout: 5 * time.Second}

// githubCache is optional; nil means every lookup hits the upstream API.
var githubCache *cache.Cache

// SetGithubCache installs a response cache for repository lookups.
func SetGithubCache(c *cache.Cache) {
	githubCache = c
}

// GithubRepos handles GET /api/profile/github/:username: a read-only
// pass-through to the repository listing API. The upstream body is returned
// verbatim; any failure maps to 404 so callers cannot probe for upstream
// errors.
func GithubRepos(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusNotFound, gin.H{"msg": "No github profile found"})
		return
	}

	ctx := c.Request.Context()

	if githubCache != nil {
		body, ok, err := githubCache.Get(ctx, username)
		if err != nil {
			log.Printf("Error reading github cache for %q: %v", username, err)
		} else if ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if clientID := os.Getenv("GITHUB_CLIENT_ID"); clientID != "" {
		query.Set("client_id", clientID)
		query.Set("client_secret", os.Getenv("GITHUB_CLIENT_SECRET"))
	}

	reqURL := githubAPIBaseURL + "/users/" + url.PathEscape(username) + "/repos?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Printf("Error building github request: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"msg": "No github profile found"})
		return
	}
	req.Header.Set("User-Agent", "devconnect-api")

	resp, err := githubHTTPClient.Do(req)
	if err != nil {
		if ctx.Err() == context.Canceled {
			return
		}
		log.Printf("Error calling github for %q: %v", username, err)
		c.JSON(http.StatusNotFound, gin.H{"msg": "No github profile found"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusNotFound, gin.H{"msg": "No github profile found"})
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(body) {
		log.Printf("Error reading github response for %q: %v", username, err)
		c.JSON(http.StatusNotFound, gin.H{"msg": "No github profile found"})
		return
	}

	if githubCache != nil {
		if err := githubCache.Set(ctx, username, body); err != nil {
			log.Printf("Error caching github response for %q: %v", username, err)
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
