package rest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysglance/internal/stats"
)

func pageSnapshot() *stats.Snapshot {
	return &stats.Snapshot{
		Hostname: "web-01",
		CPUUsage: 0.75,
		CPU: stats.CPUBreakdown{
			User:   0.40,
			Nice:   0.05,
			System: 0.30,
		},
		PerCore:         []float64{0.5, 1.0},
		MemoryTotal:     2048 * 1024 * 1024,
		MemoryUsed:      1024 * 1024 * 1024,
		MemoryAvailable: 512 * 1024 * 1024,
		MemoryCached:    256 * 1024 * 1024,
		MemoryFree:      256 * 1024 * 1024,
		CapturedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderPage(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, renderPage(&sb, pageSnapshot(), 10))
	html := sb.String()

	assert.Contains(t, html, "web-01")
	assert.Contains(t, html, `value="75"`)
	assert.Contains(t, html, "2048 MiB")
	assert.Contains(t, html, "1024 MiB")
	assert.Contains(t, html, "512 MiB")
	assert.Contains(t, html, "256 MiB")
	assert.Contains(t, html, "Core 0")
	assert.Contains(t, html, "Core 1")
	assert.Contains(t, html, `content="10"`)
}

func TestRenderPageEscapesHostname(t *testing.T) {
	snap := pageSnapshot()
	snap.Hostname = `<script>alert("x")</script>`

	var sb strings.Builder
	require.NoError(t, renderPage(&sb, snap, 10))
	html := sb.String()

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderPageWithoutPerCoreSection(t *testing.T) {
	snap := pageSnapshot()
	snap.PerCore = nil

	var sb strings.Builder
	require.NoError(t, renderPage(&sb, snap, 10))

	assert.NotContains(t, sb.String(), "per core")
}

func TestPercentRounding(t *testing.T) {
	assert.Equal(t, 0, percent(0))
	assert.Equal(t, 100, percent(1))
	assert.Equal(t, 75, percent(0.754))
	assert.Equal(t, 76, percent(0.756))
}
