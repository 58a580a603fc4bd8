package game

// Destination reports where t lands when moved dice cells, and whether the
// move is legal at all.
func Destination(t Token, dice int) (int, bool) {
	if dice < 1 || dice > 6 {
		return 0, false
	}
	switch {
	case t.IsFinished():
		return 0, false

	case t.IsHome():
		if dice != 6 {
			return 0, false
		}
		return StartCell(t.Color), true

	case t.InLane():
		to := t.Position + dice
		if to > Finished {
			return 0, false
		}
		return to, true

	default:
		steps := stepsToGateway(t.Color, t.Position)
		if dice <= steps {
			return (t.Position + dice) % TrackLength, true
		}
		to := LaneStart + dice - steps - 1
		if to > LaneEnd {
			return 0, false
		}
		return to, true
	}
}

// stepsToGateway is the forward distance on the ring from pos to c's gateway.
func stepsToGateway(c Color, pos int) int {
	return (GatewayCell(c) - pos + TrackLength) % TrackLength
}

// ValidMoves returns the ids of c's tokens that can move with the current
// dice. Empty while a roll is still pending: a dice left visible after a
// skipped turn belongs to the previous player.
func ValidMoves(s State, c Color) []string {
	out := []string{}
	if s.Dice == nil || s.CanRoll {
		return out
	}
	for _, t := range s.Tokens {
		if t.Color != c {
			continue
		}
		if _, ok := Destination(t, *s.Dice); ok {
			out = append(out, t.ID)
		}
	}
	return out
}

// capturable returns the indices of tokens that would be sent home if a
// token of color c landed on pos.
func capturable(s State, c Color, pos int) []int {
	if pos < 0 || pos >= TrackLength || IsSafe(pos) {
		return nil
	}
	var out []int
	for i, t := range s.Tokens {
		if t.Color != c && t.OnTrack() && t.Position == pos {
			out = append(out, i)
		}
	}
	return out
}
