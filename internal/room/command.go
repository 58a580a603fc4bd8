package room

import "ludo-server/internal/game"

type CommandType string

const (
	CmdCreateRoom    CommandType = "createRoom"
	CmdJoinRoom      CommandType = "joinRoom"
	CmdLeaveRoom     CommandType = "leaveRoom"
	CmdUpdateColor   CommandType = "updateColor"
	CmdToggleReady   CommandType = "toggleReady"
	CmdStartGame     CommandType = "startGame"
	CmdRollDice      CommandType = "rollDice"
	CmdMoveToken     CommandType = "moveToken"
	CmdGetValidMoves CommandType = "getValidMoves"
)

// Command is the transport-neutral shape of every client intent. Only the
// fields relevant to Type are read.
type Command struct {
	Type     CommandType `json:"type"`
	Name     string      `json:"name,omitempty"`
	Color    game.Color  `json:"color,omitempty"`
	Capacity int         `json:"capacity,omitempty"`
	Code     string      `json:"code,omitempty"`
	NewColor game.Color  `json:"newColor,omitempty"`
	TokenID  string      `json:"tokenId,omitempty"`
}

// Execute dispatches cmd on behalf of sessionID.
func (m *Manager) Execute(sessionID string, cmd Command) (Result, error) {
	switch cmd.Type {
	case CmdCreateRoom:
		return m.CreateRoom(sessionID, cmd.Name, cmd.Color, cmd.Capacity)
	case CmdJoinRoom:
		return m.JoinRoom(sessionID, cmd.Code, cmd.Name)
	case CmdLeaveRoom:
		return m.LeaveRoom(sessionID)
	case CmdUpdateColor:
		return m.UpdateColor(sessionID, cmd.NewColor)
	case CmdToggleReady:
		return m.ToggleReady(sessionID)
	case CmdStartGame:
		return m.StartGame(sessionID)
	case CmdRollDice:
		return m.RollDice(sessionID)
	case CmdMoveToken:
		return m.MoveToken(sessionID, cmd.TokenID)
	case CmdGetValidMoves:
		return m.ValidMoves(sessionID)
	default:
		return Result{}, ErrUnknownCommand.withf("unknown command %q", cmd.Type)
	}
}
