package compact

import (
	"github.com/wippyai/beam-runtime/errors"
)

// Reader is a forward-only cursor over a byte slice with position tracking.
// Reads never allocate more than the remaining input, so a corrupt length
// prefix surfaces as a truncation error instead of a huge allocation.
type Reader struct {
	data  []byte
	pos   int
	phase errors.Phase
}

// NewReader creates a Reader positioned at the start of data. Its errors
// are reported in the decode phase.
func NewReader(data []byte) *Reader {
	return NewReaderIn(errors.PhaseDecode, data)
}

// NewReaderIn creates a Reader whose errors are reported in phase.
func NewReaderIn(phase errors.Phase, data []byte) *Reader {
	return &Reader{data: data, phase: phase}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.Truncated(r.phase, r.pos, 1, 0)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the input.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if n > uint64(r.Len()) {
		return nil, errors.Truncated(r.phase, r.pos, clampInt(n), r.Len())
	}
	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

// ReadUintBE reads an n-byte big-endian unsigned integer, n <= 8.
func (r *Reader) ReadUintBE(n int) (uint64, error) {
	b, err := r.ReadBytes(uint64(n))
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// ReadU32BE reads a fixed 4-byte big-endian uint32.
func (r *Reader) ReadU32BE() (uint32, error) {
	v, err := r.ReadUintBE(4)
	return uint32(v), err
}

func clampInt(n uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if n > uint64(maxInt) {
		return maxInt
	}
	return int(n)
}
