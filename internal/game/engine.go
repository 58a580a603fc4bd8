package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// ErrIllegalAction is returned for any command that is not allowed in the
// current state. Callers get the detail through the wrapped message.
var ErrIllegalAction = errors.New("illegal action")

// DiceSource yields integers in [0, n).
type DiceSource interface {
	IntN(n int) int
}

type randomDice struct{}

func (randomDice) IntN(n int) int { return rand.IntN(n) }

// Engine applies Ludo rules to State values. It holds no game state of its
// own and is safe for concurrent use as long as its DiceSource is.
type Engine struct {
	dice DiceSource
	now  func() time.Time
}

// NewEngine returns an engine rolling from d, or from math/rand when d is nil.
func NewEngine(d DiceSource) *Engine {
	if d == nil {
		d = randomDice{}
	}
	return &Engine{dice: d, now: time.Now}
}

// WithClock replaces the clock used to stamp history entries.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Initialize creates a game for the given colors; their order is the turn
// order.
func (e *Engine) Initialize(colors []Color) State {
	s := State{
		Order:      append([]Color(nil), colors...),
		CanRoll:    true,
		Tokens:     make([]Token, 0, len(colors)*TokensPerColor),
		History:    []MoveRecord{},
		ValidMoves: []string{},
	}
	for _, c := range colors {
		for i := 0; i < TokensPerColor; i++ {
			s.Tokens = append(s.Tokens, Token{ID: TokenID(c, i), Color: c, Position: Home})
		}
	}
	return s
}

// Roll throws the die for the active player. After two sixes in a row the
// throw is drawn from 1..5 so a third six cannot come from rolling alone.
// When the active player has nothing to move the turn passes immediately
// and the rolled value stays visible.
func (e *Engine) Roll(s State) (int, State, error) {
	if s.Winner != nil {
		return 0, s, fmt.Errorf("%w: game is over", ErrIllegalAction)
	}
	if !s.CanRoll {
		return 0, s, fmt.Errorf("%w: rolling is not allowed now", ErrIllegalAction)
	}

	next := s.Clone()
	faces := 6
	if next.ConsecutiveSixes >= 2 {
		faces = 5
	}
	v := e.dice.IntN(faces) + 1
	if v == 6 {
		next.ConsecutiveSixes++
	} else {
		next.ConsecutiveSixes = 0
	}

	next.Dice = &v
	next.CanRoll = false
	next.ValidMoves = ValidMoves(next, next.Turn())
	if len(next.ValidMoves) == 0 {
		endTurn(&next, true)
	}
	return v, next, nil
}

// Move advances tokenID by the rolled value, resolving captures, the extra
// turn and the winner.
func (e *Engine) Move(s State, tokenID string) (State, error) {
	if s.Winner != nil {
		return s, fmt.Errorf("%w: game is over", ErrIllegalAction)
	}
	if s.Dice == nil {
		return s, fmt.Errorf("%w: roll the dice first", ErrIllegalAction)
	}
	tok, idx, ok := s.Token(tokenID)
	if !ok {
		return s, fmt.Errorf("%w: unknown token %q", ErrIllegalAction, tokenID)
	}
	if tok.Color != s.Turn() {
		return s, fmt.Errorf("%w: token %s belongs to %s but it is %s's turn", ErrIllegalAction, tokenID, tok.Color, s.Turn())
	}
	if !slices.Contains(s.ValidMoves, tokenID) {
		return s, fmt.Errorf("%w: token %s cannot move %d", ErrIllegalAction, tokenID, *s.Dice)
	}
	dice := *s.Dice
	to, ok := Destination(tok, dice)
	if !ok {
		return s, fmt.Errorf("%w: token %s cannot move %d", ErrIllegalAction, tokenID, dice)
	}

	next := s.Clone()
	rec := MoveRecord{
		Color:   tok.Color,
		TokenID: tok.ID,
		From:    tok.Position,
		To:      to,
		At:      e.now(),
	}
	captured := capturable(next, tok.Color, to)
	for _, i := range captured {
		next.Tokens[i].Position = Home
	}
	if len(captured) > 0 {
		rec.CapturedTokenID = next.Tokens[captured[0]].ID
	}
	next.Tokens[idx].Position = to
	next.History = append(next.History, rec)

	if w := CheckWinner(next.Tokens); w != nil {
		next.Winner = w
		next.Dice = nil
		next.CanRoll = false
		next.ValidMoves = []string{}
		return next, nil
	}

	// A third six in a row never keeps the turn, capture or not.
	extra := (dice == 6 || len(captured) > 0) && next.ConsecutiveSixes < 3
	if !extra {
		endTurn(&next, false)
		return next, nil
	}
	if dice != 6 {
		next.ConsecutiveSixes = 0
	}
	next.Dice = nil
	next.CanRoll = true
	next.ValidMoves = []string{}
	return next, nil
}

// RemoveColor drops a departed player's tokens and turn slot. If it was
// that player's turn, the turn goes to the next color in order.
func (e *Engine) RemoveColor(s State, c Color) State {
	pos := slices.Index(s.Order, c)
	if pos < 0 {
		return s
	}
	next := s.Clone()
	next.Order = slices.Delete(next.Order, pos, pos+1)
	next.Tokens = slices.DeleteFunc(next.Tokens, func(t Token) bool { return t.Color == c })

	current := s.TurnIdx % len(s.Order)
	switch {
	case len(next.Order) == 0:
		next.TurnIdx = 0
	case pos < current:
		next.TurnIdx = current - 1
	case pos == current:
		next.TurnIdx = current % len(next.Order)
		next.Dice = nil
		next.CanRoll = next.Winner == nil
		next.ConsecutiveSixes = 0
		next.ValidMoves = []string{}
	default:
		next.TurnIdx = current
	}
	return next
}

func endTurn(s *State, keepDice bool) {
	if len(s.Order) > 0 {
		s.TurnIdx = (s.TurnIdx + 1) % len(s.Order)
	}
	if !keepDice {
		s.Dice = nil
	}
	s.CanRoll = true
	s.ConsecutiveSixes = 0
	s.ValidMoves = []string{}
}
