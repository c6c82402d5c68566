package testutils

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller is a dice.Roller that returns pre-arranged results in order.
// It fails the roll once the script runs out so tests notice unexpected rolls.
type ScriptedRoller struct {
	mu      sync.Mutex
	results []int
	sizes   []int
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// NewScriptedRoller creates a roller that yields results in order
func NewScriptedRoller(results ...int) *ScriptedRoller {
	return &ScriptedRoller{results: results}
}

// Push appends more results to the script
func (r *ScriptedRoller) Push(results ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, results...)
}

// Roll returns the next scripted result
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if size <= 0 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}
	if len(r.results) == 0 {
		return 0, fmt.Errorf("scripted roller exhausted (d%d)", size)
	}

	next := r.results[0]
	r.results = r.results[1:]
	r.sizes = append(r.sizes, size)
	if next < 1 || next > size {
		return 0, fmt.Errorf("scripted result %d out of range for d%d", next, size)
	}
	return next, nil
}

// RollN returns the next count scripted results
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining reports how many scripted results were not consumed
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

// Sizes returns the die sizes requested so far
func (r *ScriptedRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.sizes))
	copy(out, r.sizes)
	return out
}
