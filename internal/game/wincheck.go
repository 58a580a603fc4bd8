package game

// CheckWinner returns the first color, in enum order, whose four tokens are
// all Finished. Only the color that just moved can newly satisfy this, so
// at most one color is ever reported.
func CheckWinner(tokens []Token) *Color {
	done := map[Color]int{}
	for _, t := range tokens {
		if t.IsFinished() {
			done[t.Color]++
		}
	}
	for _, c := range Colors {
		if done[c] == TokensPerColor {
			w := c
			return &w
		}
	}
	return nil
}
