/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/rugby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreEviction(t *testing.T) {
	now := day(2024, 6, 1)
	store := NewSessionStore(&fakeLoader{}, rugby.DefaultClassifier(), time.Hour)
	store.now = func() time.Time { return now }

	s1 := store.Get("")
	require.NotEmpty(t, s1.ID)
	assert.Same(t, s1, store.Get(s1.ID))

	now = now.Add(30 * time.Minute)
	assert.Same(t, s1, store.Get(s1.ID))

	now = now.Add(61 * time.Minute)
	s2 := store.Get(s1.ID)
	assert.NotEqual(t, s1.ID, s2.ID)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStoreLookup(t *testing.T) {
	now := day(2024, 6, 1)
	store := NewSessionStore(&fakeLoader{}, rugby.DefaultClassifier(), time.Hour)
	store.now = func() time.Time { return now }

	_, ok := store.Lookup("")
	assert.False(t, ok)
	_, ok = store.Lookup("unknown")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())

	s1 := store.Get("")
	got, ok := store.Lookup(s1.ID)
	require.True(t, ok)
	assert.Same(t, s1, got)

	now = now.Add(61 * time.Minute)
	_, ok = store.Lookup(s1.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSessionFailedReloadKeepsFrame(t *testing.T) {
	loader := &fakeLoader{matches: fixtureMatches()}
	store := NewSessionStore(loader, rugby.DefaultClassifier(), 0)
	sess := store.Get("")
	ctx := context.Background()

	first, err := sess.Frame(ctx, store, false)
	require.NoError(t, err)
	loadedAt := sess.LoadedAt()

	loader.err = fmt.Errorf("%w: status 503", rugby.ErrFetch)
	_, err = sess.Frame(ctx, store, true)
	assert.ErrorIs(t, err, rugby.ErrFetch)

	again, err := sess.Frame(ctx, store, false)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, loadedAt, sess.LoadedAt())
	assert.Equal(t, 2, loader.Calls())
}

func TestSessionConcurrentLoadOnce(t *testing.T) {
	loader := &fakeLoader{matches: fixtureMatches()}
	store := NewSessionStore(loader, rugby.DefaultClassifier(), 0)
	sess := store.Get("")

	var wg sync.WaitGroup
	frames := make([]*analytics.Frame, 8)
	for i := range frames {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := sess.Frame(context.Background(), store, false)
			assert.NoError(t, err)
			frames[i] = f
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, loader.Calls())
	for _, f := range frames {
		assert.Same(t, frames[0], f)
	}
	assert.False(t, sess.LoadedAt().IsZero())
}

func TestParseSelections(t *testing.T) {
	home := []string{"New Zealand", "England"}
	away := []string{"Australia", "France"}

	sel := ParseSelections(url.Values{}, home, away)
	assert.Equal(t, Selections{
		Team:       "New Zealand",
		Location:   analytics.Home,
		Team1:      "New Zealand",
		Team2:      "Australia",
		Years:      DefaultYears,
		WCTeam:     "New Zealand",
		WCYears:    []int{},
		FinalsTeam: "New Zealand",
	}, sel)

	q := url.Values{
		"team":     {"England"},
		"team2":    {"Unknown"},
		"location": {"away"},
		"years":    {"500"},
		"wc_years": {"2019", "2015,2019", "bogus"},
	}
	sel = ParseSelections(q, home, away)
	assert.Equal(t, "England", sel.Team)
	assert.Equal(t, "Australia", sel.Team2)
	assert.Equal(t, analytics.Away, sel.Location)
	assert.Equal(t, MaxYears, sel.Years)
	assert.Equal(t, []int{2019, 2015}, sel.WCYears)

	sel = ParseSelections(url.Values{"years": {"0"}, "location": {"x"}}, home, away)
	assert.Equal(t, MinYears, sel.Years)
	assert.Equal(t, analytics.Total, sel.Location)
}
