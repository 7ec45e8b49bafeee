/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package analytics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestCharts(t *testing.T) {
	f := sampleFrame(t)

	var buf bytes.Buffer
	require.NoError(t, f.MatchesPerYearChart(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	buf.Reset()
	require.NoError(t, f.ChampionshipsChart(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestChartsNoData(t *testing.T) {
	f := newFrame(t)

	var buf bytes.Buffer
	assert.ErrorIs(t, f.MatchesPerYearChart(&buf), ErrNoData)
	assert.ErrorIs(t, f.ChampionshipsChart(&buf), ErrNoData)
	assert.Zero(t, buf.Len())
}
