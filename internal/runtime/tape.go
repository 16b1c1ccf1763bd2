package runtime

import "github.com/aretw0/tracetm/pkg/domain"

// Apply writes o.Write under the head of c, moves the head and enters o.Next.
//
// The result never shares storage with c. Every cell of c stays on the tape, blanks
// included. A side the head has just exhausted gets a fresh blank cell.
func Apply(c domain.Configuration, o domain.Outcome) domain.Configuration {
	left := make([]domain.Symbol, len(c.Left), len(c.Left)+1)
	copy(left, c.Left)

	right := make([]domain.Symbol, 0, len(c.Right)+1)
	right = append(right, c.Right...)
	if len(right) == 0 {
		right = append(right, domain.Blank)
	}
	right[0] = o.Write

	switch o.Move {
	case domain.Left:
		if len(left) == 0 {
			left = append(left, domain.Blank)
		}
		moved := left[len(left)-1]
		left = left[:len(left)-1]
		right = append([]domain.Symbol{moved}, right...)
	default:
		left = append(left, right[0])
		right = right[1:]
	}

	return domain.Configuration{
		Left:  extended(left),
		State: o.Next,
		Right: extended(right),
	}
}

// extended gives an exhausted side its blank sentinel.
func extended(symbols []domain.Symbol) []domain.Symbol {
	if len(symbols) == 0 {
		return []domain.Symbol{domain.Blank}
	}
	return symbols
}
