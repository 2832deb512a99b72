// Package navigation implements the wizard's step state machine: the
// current step, the set of steps ever reached, and the guard that only
// lets the user jump to steps reached through forward progression.
package navigation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mark3labs/listwiz/internal/listing"
)

// ErrInvalidStep is returned by Restore for steps outside 1..4.
var ErrInvalidStep = errors.New("invalid step")

// Navigator is not safe for concurrent use; the wizard serialises access.
type Navigator struct {
	current listing.Step
	visited map[listing.Step]bool
}

// New returns a navigator at step 1 with only step 1 visited.
func New() *Navigator {
	n := &Navigator{}
	n.Reset()
	return n
}

// Reset returns to the initial state.
func (n *Navigator) Reset() {
	n.current = listing.FirstStep
	n.visited = map[listing.Step]bool{listing.FirstStep: true}
}

// Current returns the current step.
func (n *Navigator) Current() listing.Step {
	return n.current
}

// Visited returns the visited steps in ascending order.
func (n *Navigator) Visited() []listing.Step {
	out := make([]listing.Step, 0, len(n.visited))
	for s := range n.visited {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanNavigateToStep reports whether step has been reached before.
func (n *Navigator) CanNavigateToStep(step listing.Step) bool {
	return n.visited[step]
}

// GoNext advances one step, recording the destination as visited.
// Validity of the current step is deliberately not required here.
// It reports whether the navigator changed.
func (n *Navigator) GoNext() bool {
	if n.current >= listing.LastStep {
		return false
	}
	n.current++
	n.visited[n.current] = true
	return true
}

// GoBack moves one step back without touching the visited set.
func (n *Navigator) GoBack() bool {
	if n.current <= listing.FirstStep {
		return false
	}
	n.current--
	return true
}

// GoToStep jumps to a previously visited step. Anything else is a no-op.
func (n *Navigator) GoToStep(step listing.Step) bool {
	if !n.CanNavigateToStep(step) || step == n.current {
		return false
	}
	n.current = step
	return true
}

// Restore loads a persisted position. Steps outside 1..4 are rejected.
// Visited steps only ever grow by advancing one step at a time, so every
// step up to the highest visited or current one is marked visited.
func (n *Navigator) Restore(current listing.Step, visited []listing.Step) error {
	if !current.Valid() {
		return fmt.Errorf("%w: current step %d", ErrInvalidStep, current)
	}
	highest := current
	for _, s := range visited {
		if !s.Valid() {
			return fmt.Errorf("%w: visited step %d", ErrInvalidStep, s)
		}
		if s > highest {
			highest = s
		}
	}
	set := make(map[listing.Step]bool, int(highest))
	for s := listing.FirstStep; s <= highest; s++ {
		set[s] = true
	}
	n.current = current
	n.visited = set
	return nil
}
