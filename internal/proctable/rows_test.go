package proctable

import (
	"regexp"
	"testing"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/stretchr/testify/assert"
)

func pids(rows []model.Process) []int32 {
	out := make([]int32, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.PID)
	}
	return out
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Memory: model.Memory{TotalBytes: 1000},
		Processes: []model.Process{
			{PID: 1, PPID: 0, User: "root", CPU: 1, MemoryBytes: 100, RunTime: 3 * time.Hour, Command: "init"},
			{PID: 20, PPID: 1, User: "alice", CPU: 30, MemoryBytes: 10, RunTime: time.Minute, Command: "Firefox"},
			{PID: 7, PPID: 1, User: "bob", CPU: 5, MemoryBytes: 500, RunTime: time.Second, Command: "postgres"},
		},
	}
}

func TestRowsDefaultOrdering(t *testing.T) {
	snap := testSnapshot()
	// Scores: init 1+10, firefox 30+1, postgres 5+50.
	assert.Equal(t, []int32{7, 20, 1}, pids(Rows(snap, SortState{}, nil)))
	// Source order is untouched.
	assert.Equal(t, int32(1), snap.Processes[0].PID)
}

func TestRowsByColumn(t *testing.T) {
	tests := []struct {
		column Column
		asc    []int32
	}{
		{User, []int32{20, 7, 1}},
		{PID, []int32{1, 7, 20}},
		{PPID, []int32{1, 7, 20}},
		{CPU, []int32{1, 7, 20}},
		{Memory, []int32{20, 1, 7}},
		{Time, []int32{7, 20, 1}},
		{Command, []int32{20, 1, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.column.String(), func(t *testing.T) {
			state := Sorted(tt.column)
			assert.Equal(t, tt.asc, pids(Rows(testSnapshot(), state, nil)))

			state.Toggle(tt.column)
			desc := pids(Rows(testSnapshot(), state, nil))
			if tt.column != PPID {
				assert.Equal(t, []int32{tt.asc[2], tt.asc[1], tt.asc[0]}, desc)
			}
		})
	}
}

func TestRowsPPIDTiesBreakOnPID(t *testing.T) {
	state := Sorted(PPID)
	state.Toggle(PPID)
	assert.Equal(t, []int32{7, 20, 1}, pids(Rows(testSnapshot(), state, nil)))
}

func TestRowsFilter(t *testing.T) {
	rows := Rows(testSnapshot(), Sorted(PID), regexp.MustCompile("^(init|postgres)$"))
	assert.Equal(t, []int32{1, 7}, pids(rows))
}
