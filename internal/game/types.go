package game

import (
	"encoding/json"
	"fmt"
	"time"
)

type Color string

const (
	Red    Color = "red"
	Green  Color = "green"
	Yellow Color = "yellow"
	Blue   Color = "blue"
)

// Colors lists every color in enum order. Seat assignment walks this order.
var Colors = []Color{Red, Green, Yellow, Blue}

func (c Color) Valid() bool {
	switch c {
	case Red, Green, Yellow, Blue:
		return true
	}
	return false
}

const (
	TokensPerColor = 4
	TrackLength    = 52

	// LaneStart and LaneEnd bound the per-color private lane.
	LaneStart = 52
	LaneEnd   = 56

	Home     = -1
	Finished = 57
)

// startCells are the ring cells a token enters when leaving Home.
var startCells = map[Color]int{
	Red:    0,
	Green:  13,
	Yellow: 26,
	Blue:   39,
}

// StartCell returns the ring cell where tokens of c enter the board.
func StartCell(c Color) int { return startCells[c] }

// GatewayCell returns the last ring cell before c's private lane.
func GatewayCell(c Color) int { return (startCells[c] + TrackLength - 2) % TrackLength }

// StarCell returns the safe cell eight steps after c's start.
func StarCell(c Color) int { return (startCells[c] + 8) % TrackLength }

// SafeCells returns the eight ring cells where capture cannot happen.
func SafeCells() []int {
	out := make([]int, 0, 2*len(Colors))
	for _, c := range Colors {
		out = append(out, StartCell(c), StarCell(c))
	}
	return out
}

func IsSafe(pos int) bool {
	for _, c := range Colors {
		if pos == StartCell(c) || pos == StarCell(c) {
			return true
		}
	}
	return false
}

type Token struct {
	ID       string `json:"id"`
	Color    Color  `json:"color"`
	Position int    `json:"position"`
}

func TokenID(c Color, n int) string { return fmt.Sprintf("%s-%d", c, n) }

func (t Token) IsHome() bool     { return t.Position == Home }
func (t Token) IsFinished() bool { return t.Position == Finished }
func (t Token) OnTrack() bool    { return t.Position >= 0 && t.Position < TrackLength }
func (t Token) InLane() bool     { return t.Position >= LaneStart && t.Position <= LaneEnd }

func (t Token) State() string {
	switch {
	case t.IsHome():
		return "home"
	case t.IsFinished():
		return "finished"
	case t.InLane():
		return "lane"
	default:
		return "track"
	}
}

func (t Token) MarshalJSON() ([]byte, error) {
	type alias Token
	return json.Marshal(struct {
		alias
		State string `json:"state"`
	}{alias(t), t.State()})
}

type MoveRecord struct {
	Color           Color     `json:"color"`
	TokenID         string    `json:"tokenId"`
	From            int       `json:"from"`
	To              int       `json:"to"`
	At              time.Time `json:"at"`
	CapturedTokenID string    `json:"capturedTokenId,omitempty"`
}

// State is a full game snapshot. Engine operations take a State and return
// a new one; the input is never modified.
type State struct {
	TurnIdx          int          `json:"turnIndex"`
	Order            []Color      `json:"order"`
	Dice             *int         `json:"dice"`
	CanRoll          bool         `json:"canRoll"`
	ConsecutiveSixes int          `json:"consecutiveSixes"`
	Tokens           []Token      `json:"tokens"`
	History          []MoveRecord `json:"history"`
	Winner           *Color       `json:"winner"`
	ValidMoves       []string     `json:"validMoves"`
}

// Turn returns the color whose turn it is.
func (s State) Turn() Color {
	if len(s.Order) == 0 {
		return ""
	}
	return s.Order[s.TurnIdx%len(s.Order)]
}

func (s State) Token(id string) (Token, int, bool) {
	for i, t := range s.Tokens {
		if t.ID == id {
			return t, i, true
		}
	}
	return Token{}, -1, false
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Order = append(make([]Color, 0, len(s.Order)), s.Order...)
	out.Tokens = append(make([]Token, 0, len(s.Tokens)), s.Tokens...)
	out.History = append(make([]MoveRecord, 0, len(s.History)+1), s.History...)
	out.ValidMoves = append([]string{}, s.ValidMoves...)
	if s.Dice != nil {
		d := *s.Dice
		out.Dice = &d
	}
	if s.Winner != nil {
		w := *s.Winner
		out.Winner = &w
	}
	return out
}
