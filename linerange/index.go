package linerange

// Index is the decoded (gap, run) table together with the running sums
// needed to go from a source line to its line-sequence ordinal and back.
// The line-sequence index is the base-0 ordinal of a source line among all
// lines that open an executable statement.
type Index struct {
	pairs []Pair
}

// NewIndex builds an Index from already-decoded pairs (e.g. Decode's
// output).
func NewIndex(pairs []Pair) *Index {
	return &Index{pairs: pairs}
}

// Pairs returns the underlying (gap, run) pairs, e.g. for re-encoding after
// the parser appends a new run.
func (ix *Index) Pairs() []Pair { return ix.pairs }

// AppendRun extends the table as the parser discovers consecutive
// statement-starting lines (§4.1 "Line-range maintenance") by appending a
// new (gap, run) pair. A line adjacent to the previous pair's last line is
// recorded with ExtendLastRun instead.
func (ix *Index) AppendRun(gap, run int) {
	ix.pairs = append(ix.pairs, Pair{Gap: gap, Run: run})
}

// ExtendLastRun grows the run length of the most recently appended pair by
// one, used when a new statement-starting line is adjacent to the previous
// one (gap == 0).
func (ix *Index) ExtendLastRun() bool {
	if len(ix.pairs) == 0 {
		return false
	}
	ix.pairs[len(ix.pairs)-1].Run++
	return true
}

// LineSequenceIndex returns the 0-based ordinal of sourceLine among all
// lines that start an executable statement, and whether sourceLine is in
// fact such a line. Source lines are 1-based.
func (ix *Index) LineSequenceIndex(sourceLine int) (seq int, isStart bool) {
	line := 0
	seq = 0
	for _, p := range ix.pairs {
		line += p.Gap
		if sourceLine > line && sourceLine <= line+p.Run {
			return seq + (sourceLine - line - 1), true
		}
		if sourceLine <= line {
			return seq, false
		}
		seq += p.Run
		line += p.Run
	}
	return seq, false
}

// LineForSequenceIndex is the inverse of LineSequenceIndex: given a
// 0-based ordinal among statement-starting lines, returns the source line
// number.
func (ix *Index) LineForSequenceIndex(seq int) (sourceLine int, ok bool) {
	line := 0
	remaining := seq
	for _, p := range ix.pairs {
		line += p.Gap
		if remaining < p.Run {
			return line + remaining + 1, true
		}
		remaining -= p.Run
		line += p.Run
	}
	return 0, false
}

// TotalRuns returns the sum of all Run values, which §3's invariant ties to
// the number of breakpoint-allowed semicolon variants in token memory.
func (ix *Index) TotalRuns() int {
	total := 0
	for _, p := range ix.pairs {
		total += p.Run
	}
	return total
}
