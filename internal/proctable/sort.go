// Package proctable holds the ordering state of the process table.
package proctable

import (
	"fmt"
	"strings"
)

// Column is a sortable process table column.
type Column int

const (
	User Column = iota
	PID
	PPID
	CPU
	Memory
	Time
	Command
)

// Columns lists every column in display order. Digit keys 1-7 select them.
var Columns = []Column{User, PID, PPID, CPU, Memory, Time, Command}

func (c Column) String() string {
	switch c {
	case User:
		return "user"
	case PID:
		return "pid"
	case PPID:
		return "ppid"
	case CPU:
		return "cpu"
	case Memory:
		return "memory"
	case Time:
		return "time"
	case Command:
		return "command"
	default:
		return "unknown"
	}
}

// Title is the column header text.
func (c Column) Title() string {
	switch c {
	case User:
		return "User"
	case PID:
		return "PID"
	case PPID:
		return "PPID"
	case CPU:
		return "CPU%"
	case Memory:
		return "MEM"
	case Time:
		return "Time"
	case Command:
		return "Command"
	default:
		return "?"
	}
}

// ParseColumn accepts the lowercase column names and a few aliases.
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return User, nil
	case "pid":
		return PID, nil
	case "ppid":
		return PPID, nil
	case "cpu":
		return CPU, nil
	case "memory", "mem":
		return Memory, nil
	case "time":
		return Time, nil
	case "command", "cmd", "name":
		return Command, nil
	}
	return 0, fmt.Errorf("unknown sort column %q", s)
}

// ColumnForDigit maps the digit keys "1".."7" onto Columns.
func ColumnForDigit(key string) (Column, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '0'+byte(len(Columns)) {
		return 0, false
	}
	return Columns[key[0]-'1'], true
}

// Direction is the order of an active sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Arrow is the header marker for d.
func (d Direction) Arrow() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// SortState is an optional (column, direction) pair. The zero value is
// unsorted, meaning the default composite ordering applies.
type SortState struct {
	column    Column
	direction Direction
	active    bool
}

// Sorted returns a state sorting c ascending.
func Sorted(c Column) SortState {
	return SortState{column: c, direction: Ascending, active: true}
}

// Active returns the sort column and direction, ok is false when unsorted.
func (s SortState) Active() (c Column, d Direction, ok bool) {
	return s.column, s.direction, s.active
}

// Toggle cycles c through ascending, descending and cleared. Selecting a
// different column starts over at ascending.
func (s *SortState) Toggle(c Column) {
	if !s.active || s.column != c {
		*s = Sorted(c)
		return
	}
	if s.direction == Ascending {
		s.direction = Descending
		return
	}
	s.Reset()
}

// Reset clears the sort unconditionally.
func (s *SortState) Reset() { *s = SortState{} }

func (s SortState) String() string {
	if !s.active {
		return "default"
	}
	return s.column.String() + " " + s.direction.String()
}
