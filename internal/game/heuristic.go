package game

// Weights tune the bot's move preference.
type Weights struct {
	Finish    int
	Capture   int
	LeaveHome int
	EnterLane int
	Safe      int
	Progress  int
}

var DefaultWeights = Weights{
	Finish:    1000,
	Capture:   500,
	LeaveHome: 300,
	EnterLane: 200,
	Safe:      60,
	Progress:  1,
}

// HeuristicScore rates moving tokenID with the current dice. Illegal moves
// score -1.
func HeuristicScore(s State, tokenID string, w Weights) int {
	if s.Dice == nil {
		return -1
	}
	tok, _, ok := s.Token(tokenID)
	if !ok {
		return -1
	}
	to, ok := Destination(tok, *s.Dice)
	if !ok {
		return -1
	}

	score := 0
	switch {
	case to == Finished:
		score += w.Finish
	case tok.IsHome():
		score += w.LeaveHome
	case to >= LaneStart && !tok.InLane():
		score += w.EnterLane
	}
	if len(capturable(s, tok.Color, to)) > 0 {
		score += w.Capture
	}
	if to < TrackLength && IsSafe(to) {
		score += w.Safe
	}
	score += progress(tok.Color, to) * w.Progress
	return score
}

// ChooseMove picks the highest scoring legal token for the active player.
func ChooseMove(s State, w Weights) (string, bool) {
	best, bestScore := "", -1
	for _, id := range s.ValidMoves {
		if score := HeuristicScore(s, id, w); score > bestScore {
			best, bestScore = id, score
		}
	}
	return best, best != ""
}

// progress counts cells travelled from c's start to pos.
func progress(c Color, pos int) int {
	switch {
	case pos == Home:
		return 0
	case pos >= LaneStart:
		return TrackLength - 1 + pos - LaneStart + 1
	default:
		return (pos - StartCell(c) + TrackLength) % TrackLength
	}
}
