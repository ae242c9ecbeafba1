package seqpair

// Kind tags a Move with which permutation(s) it touched.
type Kind int

const (
	// None means no move was proposed; rollback is a no-op.
	None Kind = iota
	// SwapX swaps two positions in Plus only.
	SwapX
	// SwapY swaps two positions in Minus only.
	SwapY
	// SwapBoth swaps the same two positions in both Plus and Minus.
	SwapBoth
)

// Move records the last mutation applied to a Pair, sufficient to
// reverse it exactly. I and J are positions within the sequence(s), not
// rectangle values - swapping is therefore its own inverse.
type Move struct {
	Kind Kind
	I, J int
}

// Apply performs the move on p. Swapping two positions is self-inverse,
// so Apply(p, m) followed by Apply(p, m) again restores p.
func Apply(p *Pair, m Move) {
	switch m.Kind {
	case SwapX:
		p.Plus[m.I], p.Plus[m.J] = p.Plus[m.J], p.Plus[m.I]
	case SwapY:
		p.Minus[m.I], p.Minus[m.J] = p.Minus[m.J], p.Minus[m.I]
	case SwapBoth:
		p.Plus[m.I], p.Plus[m.J] = p.Plus[m.J], p.Plus[m.I]
		p.Minus[m.I], p.Minus[m.J] = p.Minus[m.J], p.Minus[m.I]
	case None:
		// no-op
	}
}

// Undo reverses m on p. Because every swap is its own inverse, Undo is
// implemented as a second Apply.
func Undo(p *Pair, m Move) {
	Apply(p, m)
}
