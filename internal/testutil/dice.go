package testutil

import (
	"fmt"
	"sync"
)

// ScriptedSource is a dice.Source that replays queued values. When a queue
// is empty it returns 0, which selects the first bucket, type, name, and
// the low end of every range.
type ScriptedSource struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
}

// NewScriptedSource creates an empty ScriptedSource.
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{}
}

// PushInts queues values returned by Intn in order.
func (s *ScriptedSource) PushInts(v ...int) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, v...)
	return s
}

// PushFloats queues values returned by Float64 in order.
func (s *ScriptedSource) PushFloats(v ...float64) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, v...)
	return s
}

// Intn returns the next queued int.
//
// Precondition: the queued value is in [0, n). Panics otherwise.
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("testutil: scripted int %d outside [0, %d)", v, n))
	}
	return v
}

// Float64 returns the next queued float.
func (s *ScriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
