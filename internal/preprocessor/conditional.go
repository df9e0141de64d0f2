package preprocessor

import "github.com/hlsl-lang/frontend/internal/source"

// condGroup is one #if/#ifdef/#ifndef...#endif group on the conditional
// stack (DATA MODEL, implicit in §4.2: "takenBranchYet, currentlyActive,
// hasElseBeenSeen").
type condGroup struct {
	takenBranchYet  bool
	currentlyActive bool
	hasElseBeenSeen bool
	startedAt       source.Span
}

// condStack tracks nested conditional groups for one token source (one
// per include frame's worth of directive processing feeds the same
// logical stack, since #include scoping doesn't nest conditionals
// across file boundaries in practice — each file must balance its own
// #if/#endif pairs).
type condStack struct {
	groups []*condGroup
}

// active reports whether output at the current nesting level should be
// emitted: every enclosing group (and the current one) must be active.
func (s *condStack) active() bool {
	for _, g := range s.groups {
		if !g.currentlyActive {
			return false
		}
	}
	return true
}

// parentActiveExcludingTop reports whether every group enclosing the
// current innermost one is active, ignoring the innermost group's own
// currentlyActive flag — used when recomputing the innermost group's
// activity on #elif/#else.
func (s *condStack) parentActiveExcludingTop() bool {
	if len(s.groups) == 0 {
		return true
	}
	for _, g := range s.groups[:len(s.groups)-1] {
		if !g.currentlyActive {
			return false
		}
	}
	return true
}

// enterElif re-evaluates the innermost group given cond, the value of
// the #elif expression (only meaningful if the group hasn't already
// taken a branch, §4.2 "#elif re-evaluates only if no prior branch was
// taken").
func (s *condStack) enterElif(cond bool) {
	g := s.top()
	if g == nil {
		return
	}
	if g.takenBranchYet {
		g.currentlyActive = false
		return
	}
	active := s.parentActiveExcludingTop() && cond
	g.currentlyActive = active
	if active {
		g.takenBranchYet = true
	}
}

// enterElse activates the innermost group's #else branch if no prior
// branch was taken.
func (s *condStack) enterElse() {
	g := s.top()
	if g == nil {
		return
	}
	if g.takenBranchYet {
		g.currentlyActive = false
		return
	}
	g.currentlyActive = s.parentActiveExcludingTop()
	g.takenBranchYet = true
}

func (s *condStack) push(taken bool, at source.Span) {
	s.groups = append(s.groups, &condGroup{
		takenBranchYet:  taken,
		currentlyActive: s.active() && taken,
		startedAt:       at,
	})
}

func (s *condStack) top() *condGroup {
	if len(s.groups) == 0 {
		return nil
	}
	return s.groups[len(s.groups)-1]
}

func (s *condStack) pop() *condGroup {
	if len(s.groups) == 0 {
		return nil
	}
	g := s.groups[len(s.groups)-1]
	s.groups = s.groups[:len(s.groups)-1]
	return g
}

func (s *condStack) depth() int { return len(s.groups) }
