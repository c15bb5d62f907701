package game

import "github.com/pappde/bmai-sub000/player"

// dieIndexStack accumulates an increasing-index subset of a player's
// available dice with a running value total, per spec.md §9's
// "Die-index stack for combinatorial enumeration" design note.
// Grounded on original_source/src/BMC_DieIndexStack.cpp's push/pop
// shape (the value-total bookkeeping), reimplemented here as a plain
// depth-first walk over all increasing-index subsets rather than
// porting the original's early-termination cycle optimizations —
// a player carries at most player.MaxDice (10) dice, so the full
// 2^10 walk is cheap and this is far less error-prone than replicating
// the original's break-early shortcuts bit for bit.
type dieIndexStack struct {
	owner    *player.Player
	indices  []int
	valueSum int
}

func newDieIndexStack(owner *player.Player) *dieIndexStack {
	return &dieIndexStack{owner: owner, indices: make([]int, 0, player.MaxDice)}
}

func (s *dieIndexStack) push(idx int) {
	s.indices = append(s.indices, idx)
	s.valueSum += s.owner.Dice[idx].Value
}

func (s *dieIndexStack) pop() {
	last := s.indices[len(s.indices)-1]
	s.valueSum -= s.owner.Dice[last].Value
	s.indices = s.indices[:len(s.indices)-1]
}

func (s *dieIndexStack) snapshot() []int {
	out := make([]int, len(s.indices))
	copy(out, s.indices)
	return out
}

// enumerateSubsets walks every increasing-index, non-empty subset of
// owner's first n available dice with size >= minSize, invoking visit
// for each (indices, valueSum). Used for skill's N-to-1 attacker
// combinations and berserk/speed's 1-to-N target combinations
// (spec.md §4.3 "Legal-move generation").
func enumerateSubsets(owner *player.Player, minSize int, visit func(indices []int, valueSum int)) {
	n := owner.AvailableDice
	if n == 0 {
		return
	}
	s := newDieIndexStack(owner)
	var walk func(start int)
	walk = func(start int) {
		if len(s.indices) >= minSize {
			visit(s.snapshot(), s.valueSum)
		}
		for i := start; i < n; i++ {
			s.push(i)
			walk(i + 1)
			s.pop()
		}
	}
	walk(0)
}

// enumerateSubsetsFixed is enumerateSubsets but seeded with a
// must-include index (spec.md §4.3: skill enumeration always starts
// from the die the caller is walking move generation from).
func enumerateSubsetsFixed(owner *player.Player, mustInclude, minSize int, visit func(indices []int, valueSum int)) {
	n := owner.AvailableDice
	if n == 0 || mustInclude >= n {
		return
	}
	s := newDieIndexStack(owner)
	s.push(mustInclude)
	var walk func(start int)
	walk = func(start int) {
		if len(s.indices) >= minSize {
			visit(s.snapshot(), s.valueSum)
		}
		for i := start; i < n; i++ {
			if i == mustInclude {
				continue
			}
			s.push(i)
			walk(i + 1)
			s.pop()
		}
	}
	walk(mustInclude + 1)
}
