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

	"github.com/mikeb26/rugbystats/dataservice"
	"github.com/mikeb26/rugbystats/internal"
	"github.com/mikeb26/rugbystats/rugby"
)

func main() {
	addr := flag.String("addr", internal.EnvOr("RUGBY_ADDR", ":8000"),
		"Listen address")
	source := flag.String("source", internal.EnvOr("RUGBY_SOURCE",
		internal.DefaultSource), "Match table (CSV path, file://, s3://, sqlite:// or postgres://)")
	flag.Parse()

	src, err := rugby.OpenSource(context.Background(), *source)
	if err != nil {
		log.Fatalf("dataservice.main: %v", err)
	}

	mux := http.NewServeMux()
	dataservice.NewServer(src).Routes(mux)
	log.Printf("dataservice.main: serving %v on %v", src, *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("dataservice.main: Serve failed: %v", err)
	}
}
