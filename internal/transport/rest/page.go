package rest

import (
	_ "embed"
	"html/template"
	"io"
	"time"

	"sysglance/internal/stats"
)

//go:embed templates/index.html
var indexTemplate string

var pageTmpl = template.Must(template.New("index").Parse(indexTemplate))

const mib = 1024 * 1024

type pageData struct {
	Hostname string

	CPUPercent       int
	CPUUserPercent   int
	CPUSystemPercent int
	CPUNicePercent   int
	Cores            []int

	MemTotalMiB     uint64
	MemUsedMiB      uint64
	MemAvailableMiB uint64
	MemCachedMiB    uint64
	MemFreeMiB      uint64

	CapturedAt     string
	RefreshSeconds int
}

func buildPageData(snap *stats.Snapshot, refreshSeconds int) pageData {
	cores := make([]int, len(snap.PerCore))
	for i, usage := range snap.PerCore {
		cores[i] = percent(usage)
	}

	return pageData{
		Hostname: snap.Hostname,

		CPUPercent:       percent(snap.CPUUsage),
		CPUUserPercent:   percent(snap.CPU.User),
		CPUSystemPercent: percent(snap.CPU.System),
		CPUNicePercent:   percent(snap.CPU.Nice),
		Cores:            cores,

		MemTotalMiB:     snap.MemoryTotal / mib,
		MemUsedMiB:      snap.MemoryUsed / mib,
		MemAvailableMiB: snap.MemoryAvailable / mib,
		MemCachedMiB:    snap.MemoryCached / mib,
		MemFreeMiB:      snap.MemoryFree / mib,

		CapturedAt:     snap.CapturedAt.Format(time.RFC3339),
		RefreshSeconds: refreshSeconds,
	}
}

func percent(fraction float64) int {
	return int(fraction*100 + 0.5)
}

func renderPage(w io.Writer, snap *stats.Snapshot, refreshSeconds int) error {
	return pageTmpl.Execute(w, buildPageData(snap, refreshSeconds))
}
