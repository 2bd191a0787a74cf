package sampler

import (
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsagePercent(t *testing.T) {
	tests := []struct {
		name string
		prev cpu.TimesStat
		cur  cpu.TimesStat
		want float64
	}{
		{"first reading", cpu.TimesStat{}, cpu.TimesStat{User: 10, Idle: 10}, 0},
		{"half busy", cpu.TimesStat{User: 10, Idle: 10}, cpu.TimesStat{User: 15, Idle: 15}, 50},
		{"fully idle", cpu.TimesStat{User: 10, Idle: 10}, cpu.TimesStat{User: 10, Idle: 20}, 0},
		{"iowait counts as idle", cpu.TimesStat{User: 10, Idle: 10}, cpu.TimesStat{User: 12, Idle: 14, Iowait: 4}, 20},
		{"no progress", cpu.TimesStat{User: 10, Idle: 10}, cpu.TimesStat{User: 10, Idle: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, usagePercent(tt.prev, tt.cur), 0.001)
		})
	}
}

func TestCounterDelta(t *testing.T) {
	assert.Equal(t, uint64(5), counterDelta(10, 15))
	assert.Equal(t, uint64(0), counterDelta(15, 10))
}

func TestInterfaceDeltas(t *testing.T) {
	prev := map[string]net.IOCountersStat{
		"eth0": {Name: "eth0", BytesSent: 100, BytesRecv: 200, PacketsSent: 1, PacketsRecv: 2},
	}
	cur := []net.IOCountersStat{
		{Name: "wlan0", BytesSent: 999},
		{Name: "eth0", BytesSent: 150, BytesRecv: 260, PacketsSent: 4, PacketsRecv: 5},
	}
	macs := map[string]string{"eth0": "aa:bb:cc:dd:ee:ff"}

	got := interfaceDeltas(prev, cur, macs)
	require.Len(t, got, 2)

	assert.Equal(t, "eth0", got[0].Name)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", got[0].MAC)
	assert.Equal(t, uint64(50), got[0].TxBytes)
	assert.Equal(t, uint64(60), got[0].RxBytes)
	assert.Equal(t, uint64(3), got[0].TxPackets)
	assert.Equal(t, uint64(3), got[0].RxPackets)

	// New interface has no baseline yet.
	assert.Equal(t, "wlan0", got[1].Name)
	assert.Zero(t, got[1].TxBytes)
}

func TestRefreshElapsed(t *testing.T) {
	s := New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }

	first := s.Refresh()
	assert.Equal(t, start, first.Timestamp)
	assert.Equal(t, time.Second, first.Elapsed)

	s.now = func() time.Time { return start.Add(1500 * time.Millisecond) }
	second := s.Refresh()
	assert.Equal(t, 1500*time.Millisecond, second.Elapsed)
}
