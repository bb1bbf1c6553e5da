package engine

// MismatchCap bounds how many mismatches are reported before the read pass
// stops comparing. Stopping early limits diagnostic volume; it does not
// mean verification succeeded.
const MismatchCap = 10

// Mismatch records one byte that differed from the expected pattern.
type Mismatch struct {
	Offset   int64 // absolute offset in the target file
	Expected byte
	Actual   byte
}

// Outcome accumulates verification state across all chunks of a read pass.
type Outcome struct {
	Mismatches []Mismatch // at most MismatchCap entries
	Count      int64
	Stopped    bool // comparison ended early at the cap
}

// Passed reports whether the pass saw zero mismatches.
func (o *Outcome) Passed() bool { return o.Count == 0 }

// compare checks actual against expected position by position, recording
// mismatches into o with absolute offsets from base and notifying emit per
// mismatch. It returns false once the cap is reached; the caller must stop
// comparing for the remainder of the pass.
func compare(expected, actual []byte, base int64, o *Outcome, emit func(Mismatch)) bool {
	for i := range actual {
		if expected[i] == actual[i] {
			continue
		}
		m := Mismatch{Offset: base + int64(i), Expected: expected[i], Actual: actual[i]}
		o.Mismatches = append(o.Mismatches, m)
		o.Count++
		if emit != nil {
			emit(m)
		}
		if o.Count >= MismatchCap {
			o.Stopped = true
			return false
		}
	}
	return true
}
