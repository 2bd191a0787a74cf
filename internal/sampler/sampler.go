package sampler

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Sampler builds Snapshots from procfs through gopsutil. Every read is
// best-effort: a failing probe leaves its part of the snapshot empty.
//
// A Sampler keeps counters from the previous call and must only be used
// from one goroutine.
type Sampler struct {
	brand string
	mhz   float64

	prevTotal cpu.TimesStat
	prevCore  []cpu.TimesStat
	prevNet   map[string]net.IOCountersStat
	prevAt    time.Time

	now func() time.Time
}

func New() *Sampler {
	s := &Sampler{
		prevNet: make(map[string]net.IOCountersStat),
		now:     time.Now,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		s.brand = strings.TrimSpace(infos[0].ModelName)
		s.mhz = infos[0].Mhz
	} else if err != nil {
		slog.Debug("cpu info unavailable", slog.String("error", err.Error()))
	}
	return s
}

// Refresh blocks until a full snapshot has been collected.
func (s *Sampler) Refresh() model.Snapshot {
	now := s.now()
	elapsed := time.Second
	if !s.prevAt.IsZero() {
		elapsed = now.Sub(s.prevAt)
	}
	s.prevAt = now

	total, perCore := s.cpuPercents()
	cpuStat := model.CPU{
		Brand:        s.brand,
		FrequencyMHz: s.mhz,
		Total:        total,
		PerCore:      perCore,
	}
	if avg, err := load.Avg(); err == nil && avg != nil {
		cpuStat.Load1, cpuStat.Load5, cpuStat.Load15 = avg.Load1, avg.Load5, avg.Load15
	}

	return model.Snapshot{
		Timestamp: now,
		Elapsed:   elapsed,
		CPU:       cpuStat,
		Memory:    memory(),
		Disks:     disks(),
		Networks:  s.networks(),
		Processes: processes(now),
	}
}

// CPU percentages from times delta.
func (s *Sampler) cpuPercents() (total float64, perCore []float64) {
	if times, _ := cpu.Times(false); len(times) > 0 {
		total = usagePercent(s.prevTotal, times[0])
		s.prevTotal = times[0]
	}

	coreTimes, _ := cpu.Times(true)
	perCore = make([]float64, len(coreTimes))
	for i, c := range coreTimes {
		if i < len(s.prevCore) {
			perCore[i] = usagePercent(s.prevCore[i], c)
		}
	}
	s.prevCore = coreTimes
	return total, perCore
}

// usagePercent is the busy share of the interval between two readings.
// A zero prev yields 0, not the average since boot.
func usagePercent(prev, cur cpu.TimesStat) float64 {
	if prev.Total() == 0 {
		return 0
	}
	dt := cur.Total() - prev.Total()
	di := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	if dt <= 0 {
		return 0
	}
	pct := 100 * (1 - di/dt)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func memory() model.Memory {
	var m model.Memory
	if vm, err := mem.VirtualMemory(); err == nil {
		m.UsedBytes, m.TotalBytes = vm.Used, vm.Total
	}
	if sw, err := mem.SwapMemory(); err == nil {
		m.SwapUsed, m.SwapTotal = sw.Used, sw.Total
	}
	return m
}

func disks() []model.Disk {
	parts, err := disk.Partitions(false)
	if err != nil {
		slog.Debug("disk partitions unavailable", slog.String("error", err.Error()))
		return nil
	}
	out := make([]model.Disk, 0, len(parts))
	for _, p := range parts {
		if strings.HasPrefix(p.Device, "/dev/loop") {
			continue
		}
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		out = append(out, model.Disk{
			Name:           p.Device,
			Mountpoint:     p.Mountpoint,
			TotalBytes:     usage.Total,
			AvailableBytes: usage.Free,
		})
	}
	return out
}

func (s *Sampler) networks() []model.Network {
	counters, err := net.IOCounters(true)
	if err != nil {
		return nil
	}
	macs := make(map[string]string)
	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			macs[iface.Name] = iface.HardwareAddr
		}
	}
	out := interfaceDeltas(s.prevNet, counters, macs)
	s.prevNet = make(map[string]net.IOCountersStat, len(counters))
	for _, c := range counters {
		s.prevNet[c.Name] = c
	}
	return out
}

// interfaceDeltas converts cumulative interface counters into per-refresh
// deltas. Interfaces seen for the first time report zero traffic.
func interfaceDeltas(prev map[string]net.IOCountersStat, cur []net.IOCountersStat, macs map[string]string) []model.Network {
	out := make([]model.Network, 0, len(cur))
	for _, c := range cur {
		n := model.Network{Name: c.Name, MAC: macs[c.Name]}
		if p, ok := prev[c.Name]; ok {
			n.TxBytes = counterDelta(p.BytesSent, c.BytesSent)
			n.RxBytes = counterDelta(p.BytesRecv, c.BytesRecv)
			n.TxPackets = counterDelta(p.PacketsSent, c.PacketsSent)
			n.RxPackets = counterDelta(p.PacketsRecv, c.PacketsRecv)
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// counterDelta treats a counter that went backwards as reset.
func counterDelta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

func processes(now time.Time) []model.Process {
	procs, err := process.Processes()
	if err != nil {
		return nil
	}
	out := make([]model.Process, 0, len(procs))
	for _, p := range procs {
		// Skip kernel threads without name
		name, _ := p.Name()
		if name == "" {
			continue
		}
		ppid, _ := p.Ppid()
		user, err := p.Username()
		if err != nil || user == "" {
			user = "unknown"
		}
		cpuPct, _ := p.CPUPercent()
		var rss uint64
		if info, err := p.MemoryInfo(); err == nil && info != nil {
			rss = info.RSS
		}
		var runTime time.Duration
		if created, err := p.CreateTime(); err == nil && created > 0 {
			runTime = now.Sub(time.UnixMilli(created)).Truncate(time.Second)
			if runTime < 0 {
				runTime = 0
			}
		}
		out = append(out, model.Process{
			PID:         p.Pid,
			PPID:        ppid,
			User:        user,
			CPU:         cpuPct,
			MemoryBytes: rss,
			RunTime:     runTime,
			Command:     name,
		})
	}
	return out
}
