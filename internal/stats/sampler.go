package stats

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sysglance/internal/logger"
)

// Sampler produces host utilization snapshots.
type Sampler interface {
	Sample(ctx context.Context) (*Snapshot, error)
}

// cpuTicks holds one reading of the kernel's cumulative tick counters.
type cpuTicks struct {
	user    uint64
	nice    uint64
	system  uint64
	idle    uint64
	iowait  uint64
	irq     uint64
	softirq uint64
	steal   uint64
}

func (t cpuTicks) total() uint64 {
	return t.user + t.nice + t.system + t.idle + t.iowait + t.irq + t.softirq + t.steal
}

func (t cpuTicks) busy() uint64 {
	return t.total() - t.idle - t.iowait
}

// prevTicks is the baseline kept between samples to turn cumulative
// counters into a rate. Replaced as a whole on every sample, so
// concurrent slow paths may race it but never observe a torn baseline.
type prevTicks struct {
	aggregate cpuTicks
	perCore   []cpuTicks
}

// ProcSampler reads CPU and memory counters from the Linux proc
// filesystem. On other platforms Sample reports ErrUnsupported.
type ProcSampler struct {
	log  logger.Logger
	goos string

	prev atomic.Pointer[prevTicks]

	hostOnce sync.Once
	hostVal  string
	hostErr  error

	// Overridable file openers for testing.
	openProcStat    func() (io.ReadCloser, error)
	openProcMeminfo func() (io.ReadCloser, error)
	readHostname    func() (string, error)
}

func NewProcSampler(log logger.Logger) *ProcSampler {
	return &ProcSampler{
		log:  log,
		goos: runtime.GOOS,
		openProcStat: func() (io.ReadCloser, error) {
			return os.Open("/proc/stat")
		},
		openProcMeminfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/meminfo")
		},
		readHostname: os.Hostname,
	}
}

// Sample reads the current counters and derives a snapshot. The first
// call after process start only establishes the tick baseline and
// reports zero CPU usage.
func (s *ProcSampler) Sample(ctx context.Context) (*Snapshot, error) {
	if s.goos != "linux" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, s.goos)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	hostname, err := s.hostname()
	if err != nil {
		return nil, err
	}

	cur, err := s.readCPUTicks()
	if err != nil {
		return nil, err
	}

	mem, err := s.readMemory()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Hostname:        hostname,
		PerCore:         make([]float64, len(cur.perCore)),
		MemoryTotal:     mem.total,
		MemoryUsed:      mem.used,
		MemoryAvailable: mem.available,
		MemoryCached:    mem.cached,
		MemoryFree:      mem.free,
		CapturedAt:      time.Now(),
	}

	prev := s.prev.Swap(cur)
	if prev == nil {
		// Cold start: no baseline yet, report idle.
		return snap, nil
	}

	snap.CPUUsage = usageBetween(prev.aggregate, cur.aggregate)
	snap.CPU = breakdownBetween(prev.aggregate, cur.aggregate)

	if len(prev.perCore) == len(cur.perCore) {
		for i := range cur.perCore {
			snap.PerCore[i] = usageBetween(prev.perCore[i], cur.perCore[i])
		}
	}

	return snap, nil
}

func (s *ProcSampler) hostname() (string, error) {
	s.hostOnce.Do(func() {
		s.hostVal, s.hostErr = s.readHostname()
	})
	if s.hostErr != nil {
		return "", fmt.Errorf("%w: hostname: %w", ErrUnreadable, s.hostErr)
	}
	return s.hostVal, nil
}

// usageBetween computes the busy fraction of the window between two
// tick readings, clamped to [0,1] against counter skew.
func usageBetween(prev, cur cpuTicks) float64 {
	totalDiff := int64(cur.total()) - int64(prev.total())
	if totalDiff <= 0 {
		return 0
	}
	busyDiff := int64(cur.busy()) - int64(prev.busy())
	return clampFraction(float64(busyDiff) / float64(totalDiff))
}

func breakdownBetween(prev, cur cpuTicks) CPUBreakdown {
	totalDiff := int64(cur.total()) - int64(prev.total())
	if totalDiff <= 0 {
		return CPUBreakdown{}
	}
	frac := func(prevTick, curTick uint64) float64 {
		return clampFraction(float64(int64(curTick)-int64(prevTick)) / float64(totalDiff))
	}
	return CPUBreakdown{
		User:   frac(prev.user, cur.user),
		Nice:   frac(prev.nice, cur.nice),
		System: frac(prev.system, cur.system),
	}
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (s *ProcSampler) readCPUTicks() (*prevTicks, error) {
	f, err := s.openProcStat()
	if err != nil {
		return nil, fmt.Errorf("%w: /proc/stat: %w", ErrUnreadable, err)
	}
	defer f.Close()

	ticks := &prevTicks{}
	sawAggregate := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "cpu "):
			parsed, err := parseCPULine(line)
			if err != nil {
				return nil, err
			}
			ticks.aggregate = parsed
			sawAggregate = true
		case strings.HasPrefix(line, "cpu"):
			parsed, err := parseCPULine(line)
			if err != nil {
				return nil, err
			}
			ticks.perCore = append(ticks.perCore, parsed)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: /proc/stat: %w", ErrUnreadable, err)
	}
	if !sawAggregate {
		return nil, fmt.Errorf("%w: /proc/stat: no aggregate cpu line", ErrUnparseable)
	}

	return ticks, nil
}

// parseCPULine parses one "cpuN user nice system idle ..." line. The
// first four counters are mandatory, the rest default to zero on older
// kernels.
func parseCPULine(line string) (cpuTicks, error) {
	fields := strings.Fields(line)[1:]
	if len(fields) < 4 {
		return cpuTicks{}, fmt.Errorf("%w: /proc/stat: short cpu line %q", ErrUnparseable, line)
	}

	values := make([]uint64, 8)
	for i := 0; i < len(values) && i < len(fields); i++ {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			if i < 4 {
				return cpuTicks{}, fmt.Errorf("%w: /proc/stat: field %d: %w", ErrUnparseable, i, err)
			}
			break
		}
		values[i] = v
	}

	return cpuTicks{
		user:    values[0],
		nice:    values[1],
		system:  values[2],
		idle:    values[3],
		iowait:  values[4],
		irq:     values[5],
		softirq: values[6],
		steal:   values[7],
	}, nil
}

type memoryCounters struct {
	total     uint64
	used      uint64
	available uint64
	cached    uint64
	free      uint64
}

func (s *ProcSampler) readMemory() (memoryCounters, error) {
	f, err := s.openProcMeminfo()
	if err != nil {
		return memoryCounters{}, fmt.Errorf("%w: /proc/meminfo: %w", ErrUnreadable, err)
	}
	defer f.Close()

	counters := make(map[string]uint64)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		key := strings.TrimSuffix(fields[0], ":")
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}

		counters[key] = value * 1024 // meminfo reports kB
	}
	if err := scanner.Err(); err != nil {
		return memoryCounters{}, fmt.Errorf("%w: /proc/meminfo: %w", ErrUnreadable, err)
	}

	total, ok := counters["MemTotal"]
	if !ok {
		return memoryCounters{}, fmt.Errorf("%w: /proc/meminfo: MemTotal missing", ErrUnparseable)
	}

	available := counters["MemAvailable"]
	used := uint64(0)
	if total > available {
		used = total - available
	}

	return memoryCounters{
		total:     total,
		used:      used,
		available: available,
		cached:    counters["Cached"],
		free:      counters["MemFree"],
	}, nil
}
