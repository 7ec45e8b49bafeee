/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/mikeb26/rugbystats/dashboard"
	"github.com/mikeb26/rugbystats/internal"
	"github.com/mikeb26/rugbystats/rugby"
)

func main() {
	addr := flag.String("addr", internal.EnvOr("RUGBY_DASHBOARD_ADDR", ":8501"),
		"Listen address")
	dataURL := flag.String("data-url", internal.EnvOr("RUGBY_DATA_URL",
		internal.DefaultDataURL), "Data service endpoint")
	cacheBucket := flag.String("cache-bucket", internal.EnvOr("RUGBY_CACHE_BUCKET", ""),
		"S3 bucket for the http cache (in-memory when empty)")
	cacheTTL := flag.Duration("cache-ttl", internal.EnvDurationOr("RUGBY_CACHE_TTL",
		10*time.Minute), "How long fetched match data is reused across sessions")
	sessionTTL := flag.Duration("session-ttl", internal.EnvDurationOr("RUGBY_SESSION_TTL",
		dashboard.DefaultSessionTTL), "Idle time before a session is dropped")
	classifierPath := flag.String("classifier", "",
		"JSON file overriding the competition substrings")
	flag.Parse()

	cls, err := rugby.ClassifierFromFlag(*classifierPath)
	if err != nil {
		log.Fatalf("dashboard.main: %v", err)
	}

	httpClient := internal.NewCachedHttpClient(context.Background(), *cacheBucket,
		*cacheTTL)
	client := rugby.NewClient(httpClient, *dataURL)
	store := dashboard.NewSessionStore(client, cls, *sessionTTL)

	mux := http.NewServeMux()
	dashboard.NewServer(store).Routes(mux)
	log.Printf("dashboard.main: reading %v; listening on %v", client.URL(), *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("dashboard.main: Serve failed: %v", err)
	}
}
