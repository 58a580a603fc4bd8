package game

import (
	"errors"
	"testing"
	"time"
)

// fixedDice returns the queued faces in order.
type fixedDice struct {
	faces []int
	asked []int
}

func (d *fixedDice) IntN(n int) int {
	d.asked = append(d.asked, n)
	f := d.faces[0]
	d.faces = d.faces[1:]
	return f - 1
}

func place(s State, positions map[string]int) State {
	for id, pos := range positions {
		_, i, ok := s.Token(id)
		if !ok {
			panic("unknown token " + id)
		}
		s.Tokens[i].Position = pos
	}
	return s
}

func rolled(s State, dice, sixes int) State {
	s.Dice = &dice
	s.CanRoll = false
	s.ConsecutiveSixes = sixes
	s.ValidMoves = ValidMoves(s, s.Turn())
	return s
}

func TestInitialize(t *testing.T) {
	s := NewEngine(nil).Initialize([]Color{Red, Green})

	if len(s.Tokens) != 8 {
		t.Fatalf("expected 8 tokens, got %d", len(s.Tokens))
	}
	for _, tok := range s.Tokens {
		if !tok.IsHome() {
			t.Fatalf("token %s not at home: %d", tok.ID, tok.Position)
		}
	}
	if s.TurnIdx != 0 || s.Turn() != Red {
		t.Fatalf("expected red to start, got idx %d (%s)", s.TurnIdx, s.Turn())
	}
	if s.Dice != nil || !s.CanRoll || s.ConsecutiveSixes != 0 || s.Winner != nil {
		t.Fatalf("unexpected initial state: %+v", s)
	}
	if _, _, ok := s.Token("green-3"); !ok {
		t.Fatal("expected token green-3")
	}
}

func TestRollDrawsFromFiveFacesAfterTwoSixes(t *testing.T) {
	d := &fixedDice{faces: []int{3, 3}}
	e := NewEngine(d)
	s := e.Initialize([]Color{Red, Green})

	if _, _, err := e.Roll(s); err != nil {
		t.Fatalf("roll: %v", err)
	}
	s.ConsecutiveSixes = 2
	if _, _, err := e.Roll(s); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if d.asked[0] != 6 || d.asked[1] != 5 {
		t.Fatalf("expected face counts [6 5], got %v", d.asked)
	}
}

func TestRollNeverThirdSix(t *testing.T) {
	e := NewEngine(nil)
	s := e.Initialize([]Color{Red, Green})
	s.ConsecutiveSixes = 2

	seen := map[int]int{}
	for i := 0; i < 3000; i++ {
		v, _, err := e.Roll(s)
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		seen[v]++
	}
	if seen[6] != 0 {
		t.Fatalf("rolled %d sixes after two sixes", seen[6])
	}
	for f := 1; f <= 5; f++ {
		if seen[f] == 0 {
			t.Fatalf("face %d never rolled: %v", f, seen)
		}
	}

	s.ConsecutiveSixes = 0
	seen = map[int]int{}
	for i := 0; i < 3000; i++ {
		v, _, _ := e.Roll(s)
		seen[v]++
	}
	for f := 1; f <= 6; f++ {
		if seen[f] == 0 {
			t.Fatalf("face %d never rolled: %v", f, seen)
		}
	}
}

func TestRollRejectedWhenNotAllowed(t *testing.T) {
	e := NewEngine(&fixedDice{faces: []int{6}})
	s := rolled(e.Initialize([]Color{Red, Green}), 6, 1)

	if _, _, err := e.Roll(s); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected illegal action, got %v", err)
	}
	w := Red
	s.Winner = &w
	s.CanRoll = true
	if _, _, err := e.Roll(s); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected illegal action after win, got %v", err)
	}
}

func TestRollWithoutMovesPassesTurn(t *testing.T) {
	e := NewEngine(&fixedDice{faces: []int{3}})
	s := e.Initialize([]Color{Red, Green})

	v, next, err := e.Roll(s)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if v != 3 || next.Dice == nil || *next.Dice != 3 {
		t.Fatalf("expected dice 3 to stay visible, got %v", next.Dice)
	}
	if next.Turn() != Green || !next.CanRoll || len(next.ValidMoves) != 0 {
		t.Fatalf("expected turn passed to green, got %+v", next)
	}
	if s.Dice != nil || s.TurnIdx != 0 {
		t.Fatal("input state was modified")
	}
}

func TestSkippedRollLeavesNextPlayerNothingToMove(t *testing.T) {
	e := NewEngine(&fixedDice{faces: []int{2}})
	s := e.Initialize([]Color{Red, Green})
	s = place(s, map[string]int{"green-0": 14})

	_, next, err := e.Roll(s)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if next.Turn() != Green || next.Dice == nil || *next.Dice != 2 {
		t.Fatalf("expected green to act with red's dice still shown, got %+v", next)
	}
	if got := ValidMoves(next, Green); len(got) != 0 {
		t.Fatalf("green has not rolled yet but can move %v", got)
	}
	if _, err := e.Move(next, "green-0"); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("move before rolling: %v", err)
	}
}

func TestRollSixWithoutMovesPassesTurn(t *testing.T) {
	e := NewEngine(&fixedDice{faces: []int{6}})
	s := e.Initialize([]Color{Red, Green})
	s = place(s, map[string]int{"red-0": Finished, "red-1": Finished, "red-2": Finished, "red-3": 55})

	_, next, err := e.Roll(s)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if next.Turn() != Green || next.ConsecutiveSixes != 0 {
		t.Fatalf("expected green to play with a reset counter, got %+v", next)
	}
}

func TestDestination(t *testing.T) {
	tcs := []struct {
		name  string
		tok   Token
		dice  int
		to    int
		legal bool
	}{
		{"home needs six", Token{Color: Red, Position: Home}, 5, 0, false},
		{"home red six", Token{Color: Red, Position: Home}, 6, 0, true},
		{"home blue six", Token{Color: Blue, Position: Home}, 6, 39, true},
		{"ring step", Token{Color: Red, Position: 10}, 4, 14, true},
		{"ring to gateway", Token{Color: Red, Position: 48}, 2, 50, true},
		{"ring into lane", Token{Color: Red, Position: 48}, 3, 52, true},
		{"gateway to lane end", Token{Color: Red, Position: 50}, 5, 56, true},
		{"lane overshoot from ring", Token{Color: Red, Position: 50}, 6, 0, false},
		{"ring wraps", Token{Color: Green, Position: 50}, 3, 1, true},
		{"green into lane", Token{Color: Green, Position: 10}, 2, 52, true},
		{"lane step", Token{Color: Yellow, Position: 52}, 2, 54, true},
		{"exact finish", Token{Color: Red, Position: 54}, 3, Finished, true},
		{"lane overshoot", Token{Color: Red, Position: 54}, 4, 0, false},
		{"finished", Token{Color: Red, Position: Finished}, 1, 0, false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			to, ok := Destination(tc.tok, tc.dice)
			if ok != tc.legal {
				t.Fatalf("legal = %v, want %v", ok, tc.legal)
			}
			if ok && to != tc.to {
				t.Fatalf("destination = %d, want %d", to, tc.to)
			}
		})
	}
}

func TestLaneOvershootForEveryCell(t *testing.T) {
	for pos := LaneStart; pos <= LaneEnd; pos++ {
		for dice := 1; dice <= 6; dice++ {
			to, ok := Destination(Token{Color: Blue, Position: pos}, dice)
			switch {
			case pos+dice > Finished && ok:
				t.Fatalf("pos %d dice %d: expected no move, got %d", pos, dice, to)
			case pos+dice == Finished && (!ok || to != Finished):
				t.Fatalf("pos %d dice %d: expected Finished, got %d %v", pos, dice, to, ok)
			}
		}
	}
}

func TestMoveCapture(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEngine(nil).WithClock(func() time.Time { return at })
	s := e.Initialize([]Color{Red, Green})
	s = place(s, map[string]int{"red-0": 5, "green-0": 9})
	s = rolled(s, 4, 0)

	next, err := e.Move(s, "red-0")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	green, _, _ := next.Token("green-0")
	if !green.IsHome() {
		t.Fatalf("expected green-0 captured, at %d", green.Position)
	}
	rec := next.History[len(next.History)-1]
	if rec.CapturedTokenID != "green-0" || rec.From != 5 || rec.To != 9 || !rec.At.Equal(at) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if next.Turn() != Red || !next.CanRoll || next.Dice != nil {
		t.Fatalf("capture should grant another roll: %+v", next)
	}
}

func TestMoveCaptureSendsLaneStateHome(t *testing.T) {
	e := NewEngine(nil)
	s := e.Initialize([]Color{Red, Green})
	s = place(s, map[string]int{"red-0": 3, "green-0": 5, "green-1": 5})
	s = rolled(s, 2, 0)

	next, err := e.Move(s, "red-0")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	for _, id := range []string{"green-0", "green-1"} {
		tok, _, _ := next.Token(id)
		if tok.Position != Home || tok.State() != "home" {
			t.Fatalf("%s not fully reset: %+v", id, tok)
		}
	}
}

func TestMoveOnSafeCellNeverCaptures(t *testing.T) {
	e := NewEngine(nil)
	for _, cell := range SafeCells() {
		s := e.Initialize([]Color{Red, Green})
		from := (cell + TrackLength - 3) % TrackLength
		s = place(s, map[string]int{"red-0": from, "green-0": cell})
		s = rolled(s, 3, 0)
		if _, ok := Destination(s.Tokens[0], 3); !ok {
			continue
		}

		next, err := e.Move(s, "red-0")
		if err != nil {
			t.Fatalf("cell %d: move: %v", cell, err)
		}
		green, _, _ := next.Token("green-0")
		if green.Position != cell {
			t.Fatalf("cell %d: defender removed", cell)
		}
		if rec := next.History[len(next.History)-1]; rec.CapturedTokenID != "" {
			t.Fatalf("cell %d: capture recorded %q", cell, rec.CapturedTokenID)
		}
		if next.Turn() != Green {
			t.Fatalf("cell %d: expected turn to pass", cell)
		}
	}
}

func TestMoveIgnoresOwnColorAndLaneTokens(t *testing.T) {
	e := NewEngine(nil)
	s := e.Initialize([]Color{Red, Green})
	s = place(s, map[string]int{"red-0": 1, "red-1": 4})
	s = rolled(s, 3, 0)

	next, err := e.Move(s, "red-0")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	a, _, _ := next.Token("red-0")
	b, _, _ := next.Token("red-1")
	if a.Position != 4 || b.Position != 4 {
		t.Fatalf("expected both red tokens stacked on 4, got %d and %d", a.Position, b.Position)
	}
}

func TestTurnContinuation(t *testing.T) {
	tcs := []struct {
		name    string
		dice    int
		sixes   int
		capture bool
		keeps   bool
	}{
		{"six no capture", 6, 1, false, true},
		{"second six", 6, 2, false, true},
		{"non six capture", 4, 0, true, true},
		{"non six no capture", 4, 0, false, false},
		{"third six with capture", 6, 3, true, false},
		{"third six no capture", 6, 3, false, false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(nil)
			s := e.Initialize([]Color{Red, Green})
			s = place(s, map[string]int{"red-0": 1})
			if tc.capture {
				s = place(s, map[string]int{"green-0": 1 + tc.dice})
			}
			s = rolled(s, tc.dice, tc.sixes)

			next, err := e.Move(s, "red-0")
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			if kept := next.Turn() == Red; kept != tc.keeps {
				t.Fatalf("kept turn = %v, want %v", kept, tc.keeps)
			}
			if !next.CanRoll || next.Dice != nil {
				t.Fatalf("expected fresh roll, got %+v", next)
			}
			if !tc.keeps && next.ConsecutiveSixes != 0 {
				t.Fatalf("counter not reset: %d", next.ConsecutiveSixes)
			}
		})
	}
}

func TestMoveRejections(t *testing.T) {
	e := NewEngine(nil)
	base := e.Initialize([]Color{Red, Green})
	base = place(base, map[string]int{"red-0": 10, "green-0": 20})

	if _, err := e.Move(base, "red-0"); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("move before roll: got %v", err)
	}
	s := rolled(base, 3, 0)
	for _, id := range []string{"red-9", "green-0", "red-1"} {
		if _, err := e.Move(s, id); !errors.Is(err, ErrIllegalAction) {
			t.Fatalf("move %s: expected illegal action, got %v", id, err)
		}
	}
}

func TestDrivingAllTokensHomeDeclaresWinner(t *testing.T) {
	e := NewEngine(&fixedDice{faces: []int{6, 5, 6, 5, 6, 5, 6, 5}})
	s := e.Initialize([]Color{Red, Green})
	s = place(s, map[string]int{"red-0": 45, "red-1": 45, "red-2": 45, "red-3": 45})

	// 45 -> 52 on a six, 52 -> 57 on a five.
	for i := 0; i < TokensPerColor; i++ {
		id := TokenID(Red, i)
		var err error
		for _, want := range []int{6, 5} {
			if s.Turn() != Red {
				t.Fatalf("token %s: lost turn", id)
			}
			var v int
			v, s, err = e.Roll(s)
			if err != nil {
				t.Fatalf("roll: %v", err)
			}
			if v != want {
				t.Fatalf("rolled %d, want %d", v, want)
			}
			if s, err = e.Move(s, id); err != nil {
				t.Fatalf("move %s: %v", id, err)
			}
			if i < TokensPerColor-1 || want != 5 {
				if s.Winner != nil {
					t.Fatalf("winner declared early: %s", *s.Winner)
				}
			}
			if want == 5 && i < TokensPerColor-1 {
				// Turn passed on the five; green rolls nothing useful.
				s.TurnIdx = 0
				s.CanRoll = true
				s.ConsecutiveSixes = 0
			}
		}
	}
	if s.Winner == nil || *s.Winner != Red {
		t.Fatalf("expected red to win, got %v", s.Winner)
	}
	if s.CanRoll || len(s.ValidMoves) != 0 {
		t.Fatalf("finished game still playable: %+v", s)
	}
	if _, _, err := e.Roll(s); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("roll after win: %v", err)
	}
}

func TestCheckWinner(t *testing.T) {
	tokens := []Token{
		{Color: Red, Position: Finished}, {Color: Red, Position: Finished},
		{Color: Red, Position: Finished}, {Color: Red, Position: 56},
		{Color: Green, Position: Finished},
	}
	if w := CheckWinner(tokens); w != nil {
		t.Fatalf("unexpected winner %s", *w)
	}
	tokens[3].Position = Finished
	if w := CheckWinner(tokens); w == nil || *w != Red {
		t.Fatalf("expected red, got %v", w)
	}
}

func TestValidMovesWithoutDice(t *testing.T) {
	s := NewEngine(nil).Initialize([]Color{Red, Green})
	if got := ValidMoves(s, Red); len(got) != 0 {
		t.Fatalf("expected no moves without dice, got %v", got)
	}
	s = rolled(s, 6, 1)
	if got := ValidMoves(s, Red); len(got) != 4 {
		t.Fatalf("expected 4 home exits on a six, got %v", got)
	}
}

func TestRemoveColor(t *testing.T) {
	e := NewEngine(nil)
	s := e.Initialize([]Color{Red, Green, Yellow})
	s.TurnIdx = 1
	s = rolled(s, 6, 1)

	next := e.RemoveColor(s, Green)
	if len(next.Order) != 2 || next.Turn() != Yellow {
		t.Fatalf("expected yellow to take the turn, got %v idx %d", next.Order, next.TurnIdx)
	}
	if next.Dice != nil || !next.CanRoll {
		t.Fatalf("expected fresh roll for yellow: %+v", next)
	}
	for _, tok := range next.Tokens {
		if tok.Color == Green {
			t.Fatalf("green token left behind: %s", tok.ID)
		}
	}

	next = e.RemoveColor(next, Red)
	if next.Turn() != Yellow || next.TurnIdx != 0 {
		t.Fatalf("expected yellow to keep the turn, got idx %d", next.TurnIdx)
	}
}

func TestChooseMovePrefersFinishing(t *testing.T) {
	e := NewEngine(nil)
	s := e.Initialize([]Color{Red, Green})
	s = place(s, map[string]int{"red-0": 54, "red-1": 7, "green-0": 10})
	s = rolled(s, 3, 0)

	id, ok := ChooseMove(s, DefaultWeights)
	if !ok || id != "red-0" {
		t.Fatalf("expected red-0 to finish, got %q", id)
	}

	s = place(s, map[string]int{"red-0": 30})
	s = rolled(s, 3, 0)
	if id, _ := ChooseMove(s, DefaultWeights); id != "red-1" {
		t.Fatalf("expected capture with red-1, got %q", id)
	}
}
