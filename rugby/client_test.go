/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikeb26/rugbystats/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Envelope{Partidos: sampleMatches()})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	matches, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleMatches(), matches)
}

func TestClientLoadEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"partidos":[]}`))
	}))
	defer srv.Close()

	matches, err := NewClient(nil, srv.URL).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestClientLoadFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "backing source unreadable", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(c.handler)
			defer srv.Close()

			_, err := NewClient(srv.Client(), srv.URL).Load(context.Background())
			assert.ErrorIs(t, err, ErrFetch)
		})
	}

	_, err := NewClient(nil, "http://127.0.0.1:1/retrieve_data/").Load(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestClientFreshFetchBypassesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"partidos":[]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(internal.NewCachedHttpClient(ctx, "", time.Minute), srv.URL)
	for i := 0; i < 2; i++ {
		_, err := c.Load(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())

	_, err := c.Load(WithFreshFetch(ctx))
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
