package vm

import "fmt"

// historyDepth is the fixed size of the recently-decoded-instruction
// ring buffer exposed to front ends, grounded on
// original_source/machine.py's 10-entry instruction deque.
const historyDepth = 10

// history is a fixed-depth ring buffer of disassembly-style lines.
type history struct {
	lines [historyDepth]string
	count int
}

func (h *history) add(line string) {
	copy(h.lines[:historyDepth-1], h.lines[1:])
	h.lines[historyDepth-1] = line
	if h.count < historyDepth {
		h.count++
	}
}

// Lines returns the buffered lines oldest-first.
func (h *history) Lines() []string {
	start := historyDepth - h.count
	return append([]string(nil), h.lines[start:]...)
}

// diagEntry is one recoverable-error log entry: a cycle count plus the
// message, matching the "logged, cycle continues" policy of spec.md §7.
type diagEntry struct {
	Cycle   uint64
	Message string
}

// diagLogDepth bounds the in-memory diagnostic log so a pathological
// program cannot grow it without bound.
const diagLogDepth = 256

type diagLog struct {
	entries []diagEntry
}

func (d *diagLog) record(cycle uint64, format string, args ...any) {
	d.entries = append(d.entries, diagEntry{Cycle: cycle, Message: fmt.Sprintf(format, args...)})
	if len(d.entries) > diagLogDepth {
		d.entries = d.entries[len(d.entries)-diagLogDepth:]
	}
}

// Entries returns the recorded diagnostics oldest-first.
func (d *diagLog) Entries() []diagEntry {
	return append([]diagEntry(nil), d.entries...)
}
