package proctable

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

// Rows returns the processes of snap that match filter, ordered by state.
// The snapshot itself is never reordered. A nil filter keeps every process.
func Rows(snap *model.Snapshot, state SortState, filter *regexp.Regexp) []model.Process {
	rows := make([]model.Process, 0, len(snap.Processes))
	for _, p := range snap.Processes {
		if filter != nil && !filter.MatchString(p.Command) {
			continue
		}
		rows = append(rows, p)
	}

	column, direction, ok := state.Active()
	if !ok {
		// Default: combined CPU and memory share, heaviest first.
		score := func(p model.Process) float64 { return p.CPU + snap.MemoryPercent(p) }
		slices.SortStableFunc(rows, func(a, b model.Process) int {
			return cmpOr(cmp.Compare(score(b), score(a)), cmp.Compare(a.PID, b.PID))
		})
		return rows
	}

	compare := comparator(column)
	slices.SortStableFunc(rows, func(a, b model.Process) int {
		c := compare(a, b)
		if direction == Descending {
			c = -c
		}
		return cmpOr(c, cmp.Compare(a.PID, b.PID))
	})
	return rows
}

func comparator(c Column) func(a, b model.Process) int {
	switch c {
	case User:
		return func(a, b model.Process) int { return strings.Compare(a.User, b.User) }
	case PPID:
		return func(a, b model.Process) int { return cmp.Compare(a.PPID, b.PPID) }
	case CPU:
		return func(a, b model.Process) int { return cmp.Compare(a.CPU, b.CPU) }
	case Memory:
		return func(a, b model.Process) int { return cmp.Compare(a.MemoryBytes, b.MemoryBytes) }
	case Time:
		return func(a, b model.Process) int { return cmp.Compare(a.RunTime, b.RunTime) }
	case Command:
		return func(a, b model.Process) int {
			return strings.Compare(strings.ToLower(a.Command), strings.ToLower(b.Command))
		}
	default:
		return func(a, b model.Process) int { return cmp.Compare(a.PID, b.PID) }
	}
}
