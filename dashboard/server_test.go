/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/rugbystats/rugby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	calls   int32
	fresh   int32
	matches []rugby.Match
	err     error
}

func (fl *fakeLoader) Load(ctx context.Context) ([]rugby.Match, error) {
	atomic.AddInt32(&fl.calls, 1)
	if rugby.IsFreshFetch(ctx) {
		atomic.AddInt32(&fl.fresh, 1)
	}
	if fl.err != nil {
		return nil, fl.err
	}
	return fl.matches, nil
}

func (fl *fakeLoader) Calls() int {
	return int(atomic.LoadInt32(&fl.calls))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureMatches() []rugby.Match {
	return []rugby.Match{
		{Date: day(2015, 10, 31), HomeTeam: "New Zealand", AwayTeam: "Australia",
			HomeScore: 34, AwayScore: 17, Competition: "Rugby World Cup Final 2015",
			Stadium: "Twickenham", WorldCup: true, Neutral: true},
		{Date: day(2019, 10, 12), HomeTeam: "England", AwayTeam: "France",
			Competition: "Rugby World Cup 2019", WorldCup: true},
		{Date: day(2020, 1, 1), HomeTeam: "A", AwayTeam: "B", HomeScore: 20,
			AwayScore: 10, Competition: "Six Nations"},
		{Date: day(2020, 2, 1), HomeTeam: "B", AwayTeam: "A", HomeScore: 15,
			AwayScore: 15, Competition: "Six Nations"},
	}
}

func newTestServer(t *testing.T, loader Loader) *httptest.Server {
	t.Helper()
	return newStoreServer(t, NewSessionStore(loader, rugby.DefaultClassifier(), time.Hour))
}

func newStoreServer(t *testing.T, store *SessionStore) *httptest.Server {
	t.Helper()
	srv := NewServer(store)
	srv.now = func() time.Time { return day(2024, 6, 1) }

	mux := http.NewServeMux()
	srv.Routes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, cookie *http.Cookie) (*http.Response, *goquery.Document) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return resp, doc
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestDashboardFetchesOncePerSession(t *testing.T) {
	loader := &fakeLoader{matches: fixtureMatches()}
	ts := newTestServer(t, loader)

	resp, _ := get(t, ts.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, 1, loader.Calls())

	for _, q := range []string{"?team=A", "?team=B&location=Away", "?years=3"} {
		resp, _ = get(t, ts.URL+"/"+q, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Nil(t, sessionCookie(resp), "existing session must be reused")
	}
	resp, _ = get(t, ts.URL+"/charts/matches-per-year.png", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, loader.Calls())

	get(t, ts.URL+"/?reload=1", cookie)
	assert.Equal(t, 2, loader.Calls())
	assert.Equal(t, int32(1), atomic.LoadInt32(&loader.fresh))

	// a new browser gets its own session and its own fetch
	get(t, ts.URL+"/", nil)
	assert.Equal(t, 3, loader.Calls())
}

func TestDashboardPanels(t *testing.T) {
	ts := newTestServer(t, &fakeLoader{matches: fixtureMatches()})

	resp, doc := get(t, ts.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "4", doc.Find("#matches").Text())
	assert.Equal(t, "4", doc.Find("#teams").Text())
	assert.Equal(t, "3", doc.Find("#competitions").Text())

	// defaults: first home team, Home location
	assert.Equal(t, "New Zealand", doc.Find("#team option[selected]").Text())
	assert.Equal(t, "100.00%", doc.Find("#win-pct").Text())

	assert.Equal(t, 1, doc.Find("#h2h-table tr.match").Length())
	assert.Equal(t, "New Zealand", doc.Find("#h2h-table td.winner").Text())

	// no World Cup years selected yet
	assert.Equal(t, 1, doc.Find("#worldcup-info").Length())
	assert.Equal(t, 2, doc.Find("#wc_years option").Length())

	assert.Equal(t, 1, doc.Find("#finals-table tr.match").Length())
	assert.Equal(t, "1", doc.Find("#finals-count").Text())

	assert.Equal(t, 1, doc.Find(`img[src="/charts/championships.png"]`).Length())
	assert.Equal(t, 1, doc.Find(`img[src="/charts/matches-per-year.png"]`).Length())
	assert.Equal(t, 4, doc.Find("#ranking-table tr").Length()-1)
}

func TestDashboardSelections(t *testing.T) {
	ts := newTestServer(t, &fakeLoader{matches: fixtureMatches()})

	_, doc := get(t, ts.URL+"/?team=A&location=Total&team1=A&team2=A"+
		"&wc_team=England&wc_years=2019&finals_team=England", nil)

	assert.Equal(t, "50.00%", doc.Find("#win-pct").Text())
	assert.Equal(t, 1, doc.Find("#h2h-warning").Length())
	assert.Equal(t, 0, doc.Find("#h2h-table").Length())

	assert.Equal(t, "1", doc.Find("#wc-played").Text())
	assert.Equal(t, "0", doc.Find("#wc-won").Text())
	assert.Equal(t, "2019", doc.Find("#wc_years option[selected]").Text())

	info := doc.Find("#finals-info").Text()
	assert.Contains(t, info, "England has not won a World Cup final")

	// an invalid location falls back to Total
	_, doc = get(t, ts.URL+"/?team=A&location=Neutral", nil)
	assert.Equal(t, "50.00%", doc.Find("#win-pct").Text())
}

func TestDashboardFetchError(t *testing.T) {
	loader := &fakeLoader{err: fmt.Errorf("%w: status 500", rugby.ErrFetch)}
	ts := newTestServer(t, loader)

	resp, doc := get(t, ts.URL+"/", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 1, doc.Find("#error").Length())
	assert.Contains(t, doc.Find("#error pre").Text(), "status 500")
	assert.Equal(t, 0, doc.Find("#matches").Length())

	// the failed fetch is not cached; the next interaction fetches again
	get(t, ts.URL+"/", sessionCookie(resp))
	assert.Equal(t, 2, loader.Calls())
}

func TestDashboardCharts(t *testing.T) {
	ts := newTestServer(t, &fakeLoader{matches: fixtureMatches()})

	for _, path := range []string{"/charts/championships.png", "/charts/matches-per-year.png"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"), path)
	}

	empty := newTestServer(t, &fakeLoader{matches: []rugby.Match{}})
	resp, err := http.Get(empty.URL + "/charts/championships.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardChartsDoNotStartSessions(t *testing.T) {
	loader := &fakeLoader{matches: fixtureMatches()}
	store := NewSessionStore(loader, rugby.DefaultClassifier(), time.Hour)
	ts := newStoreServer(t, store)

	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/charts/matches-per-year.png")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Nil(t, sessionCookie(resp))
	}
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 3, loader.Calls())

	// a chart requested by a live session reuses its frame
	resp, _ := get(t, ts.URL+"/", nil)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	resp, _ = get(t, ts.URL+"/charts/championships.png", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 4, loader.Calls())
}

func TestDashboardEmptyData(t *testing.T) {
	ts := newTestServer(t, &fakeLoader{matches: []rugby.Match{}})

	resp, doc := get(t, ts.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", doc.Find("#matches").Text())
	assert.Equal(t, "0.00%", doc.Find("#win-pct").Text())
	assert.True(t, strings.Contains(doc.Find("#per-year").Text(), "No dated matches"))
}

func TestDashboardNotFound(t *testing.T) {
	ts := newTestServer(t, &fakeLoader{matches: fixtureMatches()})
	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
