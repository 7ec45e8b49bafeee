/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/subtle"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/internal"
	"github.com/mikeb26/rugbystats/rugby"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const version = "0.1.0"

func newFrameLoader(httpClient *http.Client, url string,
	cls rugby.Classifier) FrameLoader {

	client := rugby.NewClient(httpClient, url)
	return func(ctx context.Context) (*analytics.Frame, error) {
		matches, err := client.Load(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.NewFrame(matches, cls)
	}
}

// withAPIKey rejects requests whose header does not carry apiKey. An empty
// apiKey disables the check.
func withAPIKey(apiKey string, header string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey != "" {
			got := strings.TrimSpace(r.Header.Get(header))
			if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func routes(mux *http.ServeMux, server *mcp.Server, registry []toolInfo,
	apiKey string, authHeader string) {

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux.Handle("/mcp", withAPIKey(apiKey, authHeader, handler))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/tools", withAPIKey(apiKey, authHeader,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, err := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
			if err != nil {
				log.Printf("rugbymcp.tools: %v", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(b)
		})))
}

func main() {
	addr := flag.String("addr", internal.EnvOr("RUGBY_MCP_ADDR", ":8090"),
		"HTTP listen address")
	dataURL := flag.String("data-url", internal.EnvOr("RUGBY_DATA_URL",
		internal.DefaultDataURL), "Data service endpoint")
	cacheBucket := flag.String("cache-bucket", internal.EnvOr("RUGBY_CACHE_BUCKET", ""),
		"S3 bucket for the http cache (in-memory when empty)")
	cacheTTL := flag.Duration("cache-ttl", internal.EnvDurationOr("RUGBY_CACHE_TTL",
		10*time.Minute), "How long fetched match data is reused")
	classifierPath := flag.String("classifier", "",
		"JSON file overriding the competition substrings")
	authHeader := flag.String("auth-header", "X-API-Key",
		"HTTP header to read the API key from")
	flag.Parse()

	cls, err := rugby.ClassifierFromFlag(*classifierPath)
	if err != nil {
		log.Fatalf("rugbymcp.main: %v", err)
	}
	apiKey := strings.TrimSpace(os.Getenv("RUGBY_MCP_API_KEY"))
	if apiKey == "" {
		log.Printf("rugbymcp.main: RUGBY_MCP_API_KEY unset; serving without auth")
	}

	ctx := context.Background()
	httpClient := internal.NewCachedHttpClient(ctx, *cacheBucket, *cacheTTL)
	ts := &toolset{
		load: newFrameLoader(httpClient, *dataURL, cls),
		now:  time.Now,
	}
	server, registry := newServer(ts, version)

	mux := http.NewServeMux()
	routes(mux, server, registry, apiKey, *authHeader)
	log.Printf("rugbymcp.main: %v tools; listening on %v", len(registry), *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("rugbymcp.main: Serve failed: %v", err)
	}
}
