package model

import "time"

// CPU aggregates instantaneous CPU usage.
type CPU struct {
	Brand        string    `json:"brand"`
	FrequencyMHz float64   `json:"frequency_mhz"`
	Total        float64   `json:"total"`    // percent 0-100
	PerCore      []float64 `json:"per_core"` // per-core percent
	Load1        float64   `json:"load1"`
	Load5        float64   `json:"load5"`
	Load15       float64   `json:"load15"`
}

// Memory captures RAM and swap usage in bytes for precision.
type Memory struct {
	UsedBytes  uint64 `json:"used_bytes"`
	TotalBytes uint64 `json:"total_bytes"`
	SwapUsed   uint64 `json:"swap_used"`
	SwapTotal  uint64 `json:"swap_total"`
}

// Disk is a mounted filesystem.
type Disk struct {
	Name           string `json:"name"`
	Mountpoint     string `json:"mountpoint"`
	TotalBytes     uint64 `json:"total_bytes"`
	AvailableBytes uint64 `json:"available_bytes"`
}

// UsedBytes never underflows, even when a filesystem reports more free than total.
func (d Disk) UsedBytes() uint64 {
	if d.AvailableBytes > d.TotalBytes {
		return 0
	}
	return d.TotalBytes - d.AvailableBytes
}

// Network holds counters for one interface. Byte and packet counts are the
// deltas observed since the previous refresh.
type Network struct {
	Name      string `json:"name"`
	MAC       string `json:"mac"`
	TxBytes   uint64 `json:"tx_bytes"`
	RxBytes   uint64 `json:"rx_bytes"`
	TxPackets uint64 `json:"tx_packets"`
	RxPackets uint64 `json:"rx_packets"`
}

// Process is a single row of the process table.
type Process struct {
	PID         int32         `json:"pid"`
	PPID        int32         `json:"ppid"`
	User        string        `json:"user"`
	CPU         float64       `json:"cpu"` // percent
	MemoryBytes uint64        `json:"memory_bytes"`
	RunTime     time.Duration `json:"run_time"`
	Command     string        `json:"command"`
}

// Snapshot is the full set of host metrics held between refreshes.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Elapsed   time.Duration `json:"elapsed"` // time covered by the network deltas
	CPU       CPU           `json:"cpu"`
	Memory    Memory        `json:"memory"`
	Disks     []Disk        `json:"disks"`
	Networks  []Network     `json:"networks"`
	Processes []Process     `json:"processes"`
}

// Zero returns an empty snapshot for initialization.
func Zero() Snapshot { return Snapshot{Timestamp: time.Now()} }

// MemoryPercent is the share of total RAM held by p, 0 when total is unknown.
func (s *Snapshot) MemoryPercent(p Process) float64 {
	if s.Memory.TotalBytes == 0 {
		return 0
	}
	return float64(p.MemoryBytes) * 100 / float64(s.Memory.TotalBytes)
}
