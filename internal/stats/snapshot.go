// Package stats samples host CPU and memory utilization from the kernel
// interface and exposes it as immutable snapshots.
package stats

import "time"

// CPUBreakdown splits CPU usage over the sampling window into its
// main components. All values are fractions in [0,1].
type CPUBreakdown struct {
	User   float64 `json:"user"`
	Nice   float64 `json:"nice"`
	System float64 `json:"system"`
}

// Snapshot is a point-in-time record of host utilization. It is never
// mutated after construction; concurrent readers may share one freely.
//
// Memory fields are byte counts and do not sum exactly because kernel
// accounting overlaps (cached pages count as available).
type Snapshot struct {
	Hostname string `json:"hostname"`

	CPUUsage float64      `json:"cpu_usage"` // fraction in [0,1]
	CPU      CPUBreakdown `json:"cpu"`
	PerCore  []float64    `json:"per_core,omitempty"`

	MemoryTotal     uint64 `json:"memory_total"`
	MemoryUsed      uint64 `json:"memory_used"`
	MemoryAvailable uint64 `json:"memory_available"`
	MemoryCached    uint64 `json:"memory_cached"`
	MemoryFree      uint64 `json:"memory_free"`

	CapturedAt time.Time `json:"captured_at"`
}
