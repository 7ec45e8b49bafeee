/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent       = "rugbystats/0.3.0 (+https://github.com/mikeb26/rugbystats)"
	DefaultDataURL  = "http://localhost:8000/retrieve_data/"
	DefaultSource   = "results.csv"
	DefaultSQLTable = "matches"
	WebCacheBucket  = "bopmatic-rugbystats-prod-webcache"
)
