package mocks

import (
	"github.com/mazekit/mazegame-go/internal/dependencies/random"
)

// MockRandom returns queued values in FIFO order. An exhausted queue
// yields the zero value, which keeps board construction deterministic
// without queueing a result for every tile.
type MockRandom struct {
	ints    []int
	strings []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates an empty MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued int, or returns 0 when the queue is empty
func (r *MockRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

// String pops the next queued string, or returns "" when the queue is empty
func (r *MockRandom) String(length int, alphabet string) string {
	if len(r.strings) == 0 {
		return ""
	}
	v := r.strings[0]
	r.strings = r.strings[1:]
	return v
}

// QueueIntn appends values to the Intn queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.ints = append(r.ints, values...)
}

// QueueString appends values to the String queue
func (r *MockRandom) QueueString(values ...string) {
	r.strings = append(r.strings, values...)
}

// Reset drops everything still queued
func (r *MockRandom) Reset() {
	r.ints = nil
	r.strings = nil
}
