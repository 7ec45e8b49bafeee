/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/mikeb26/rugbystats/internal"
	"github.com/mikeb26/rugbystats/rugby"
)

// this program exists just to seed the shared http cache so the first
// dashboard session and bot interaction after a deploy skip the fetch

func main() {
	dataURL := flag.String("data-url", internal.EnvOr("RUGBY_DATA_URL",
		internal.DefaultDataURL), "Data service endpoint")
	bucket := flag.String("cache-bucket", internal.EnvOr("RUGBY_CACHE_BUCKET",
		internal.WebCacheBucket), "S3 bucket backing the http cache")
	cacheTTL := flag.Duration("cache-ttl", internal.EnvDurationOr("RUGBY_CACHE_TTL",
		10*time.Minute), "How long the seeded response stays fresh")
	flag.Parse()

	ctx := context.Background()
	httpClient := internal.NewCachedHttpClient(ctx, *bucket, *cacheTTL)
	matches, err := rugby.NewClient(httpClient, *dataURL).Load(ctx)
	if err != nil {
		log.Fatalf("cacheseed: %v", err)
	}

	fmt.Printf("seeded %v matches from %v\n", len(matches), *dataURL)
}
