package room

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"ludo-server/internal/game"
	"ludo-server/internal/shared"

	"github.com/google/uuid"
)

// Result is what a Manager operation hands back to its caller. The same
// notifications have already been passed to the Broadcaster, in order, and
// Seq is the number of the last of them.
type Result struct {
	Room          *View                 `json:"room,omitempty"`
	Player        *Player               `json:"player,omitempty"`
	Game          *game.State           `json:"game,omitempty"`
	Dice          int                   `json:"dice,omitempty"`
	ValidMoves    []string              `json:"validMoves,omitempty"`
	Seq           uint64                `json:"seq,omitempty"`
	Notifications []shared.Notification `json:"-"`
}

type Manager struct {
	store       Store
	engine      *game.Engine
	broadcaster Broadcaster
	now         func() time.Time
	newCode     func() string
}

type Option func(*Manager)

func WithEngine(e *game.Engine) Option { return func(m *Manager) { m.engine = e } }

func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

func WithCodeGenerator(f func() string) Option { return func(m *Manager) { m.newCode = f } }

func WithBroadcaster(b Broadcaster) Option { return func(m *Manager) { m.broadcaster = b } }

func NewManager(s Store, opts ...Option) *Manager {
	m := &Manager{
		store:       s,
		engine:      game.NewEngine(nil),
		broadcaster: noopBroadcaster{},
		now:         time.Now,
		newCode:     NewCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetBroadcaster wires the transport after construction. Call it before the
// manager starts serving.
func (m *Manager) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = noopBroadcaster{}
	}
	m.broadcaster = b
}

func (m *Manager) CreateRoom(sessionID, name string, color game.Color, capacity int) (Result, error) {
	name, err := validName(name)
	if err != nil {
		return Result{}, err
	}
	if !color.Valid() {
		return Result{}, ErrInvalidColor.with(fmt.Sprintf("unknown color %q", color), "color", string(color))
	}
	if capacity < MinPlayers || capacity > MaxPlayers {
		return Result{}, ErrInvalidCapacity
	}
	if _, ok := m.store.SessionRoom(sessionID); ok {
		return Result{}, ErrAlreadyInRoom
	}

	now := m.now()
	p := Player{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		Admin:     true,
		JoinedAt:  now,
		SessionID: sessionID,
	}
	r := &Room{
		ID:           uuid.NewString(),
		AdminID:      p.ID,
		Players:      []Player{p},
		Capacity:     capacity,
		Status:       StatusWaiting,
		CreatedAt:    now,
		LastActivity: now,
	}

	// Hold the lock before the room becomes visible so nobody can join a
	// room whose creator turns out to be bound elsewhere.
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		r.Code = m.newCode()
		if m.store.InsertRoom(r) {
			break
		}
	}
	if !m.store.BindSession(sessionID, r.Code) {
		r.closed = true
		m.store.DeleteRoom(r.Code)
		return Result{}, ErrAlreadyInRoom
	}
	log.Printf("room %s created by %s (%s)", r.Code, p.Name, p.Color)

	res := Result{Player: &p}
	m.emitRoom(r, &res, "created", fmt.Sprintf("%s created the room", p.Name))
	v := r.view()
	res.Room = &v
	return res, nil
}

func (m *Manager) JoinRoom(sessionID, code, name string) (Result, error) {
	name, err := validName(name)
	if err != nil {
		return Result{}, err
	}
	code = NormalizeCode(code)
	r, ok := m.store.GetRoom(code)
	if !ok {
		return Result{}, ErrNotFound.with(fmt.Sprintf("room %s not found", code), "code", code)
	}
	if _, ok := m.store.SessionRoom(sessionID); ok {
		return Result{}, ErrAlreadyInRoom
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Result{}, ErrNotFound.with(fmt.Sprintf("room %s not found", code), "code", code)
	}
	if r.Status != StatusWaiting {
		return Result{}, ErrRoomNotJoinable.withf("room %s is %s", code, r.Status)
	}
	if len(r.Players) >= r.Capacity {
		return Result{}, ErrRoomFull.with(fmt.Sprintf("room %s is full", code), "capacity", fmt.Sprint(r.Capacity))
	}
	color, ok := firstFreeColor(r)
	if !ok {
		return Result{}, ErrNoColorAvailable
	}
	if !m.store.BindSession(sessionID, r.Code) {
		return Result{}, ErrAlreadyInRoom
	}

	now := m.now()
	p := Player{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		JoinedAt:  now,
		SessionID: sessionID,
	}
	r.Players = append(r.Players, p)
	r.LastActivity = now

	res := Result{Player: &p}
	m.emitRoom(r, &res, "joined", fmt.Sprintf("%s joined as %s", p.Name, p.Color))
	v := r.view()
	res.Room = &v
	return res, nil
}

func (m *Manager) LeaveRoom(sessionID string) (Result, error) {
	r, idx, err := m.locate(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer r.mu.Unlock()

	p := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	m.store.ReleaseSession(sessionID)
	r.LastActivity = m.now()
	res := Result{Player: &p}

	if len(r.Players) == 0 {
		r.closed = true
		m.store.DeleteRoom(r.Code)
		log.Printf("room %s deleted: last player left", r.Code)
		m.emit(r, &res, shared.KindRoomClosed, shared.SystemMessage{Event: "closed", Text: "room closed"})
		return res, nil
	}

	if p.Admin {
		r.Players[0].Admin = true
		r.AdminID = r.Players[0].ID
	}
	playing := r.Game != nil && r.Status == StatusPlaying
	abandoned := false
	if playing {
		g := m.engine.RemoveColor(*r.Game, p.Color)
		r.Game = &g
		if len(r.Players) < MinPlayers {
			r.Status = StatusFinished
			abandoned = true
			log.Printf("room %s: game abandoned", r.Code)
		}
	}

	text := fmt.Sprintf("%s left", p.Name)
	if p.Admin {
		text = fmt.Sprintf("%s left, %s is now admin", p.Name, r.Players[0].Name)
	}
	m.emitRoom(r, &res, "left", text)
	if playing {
		m.emit(r, &res, shared.KindGameUpdated, r.Game.Clone())
	}
	if abandoned {
		m.emit(r, &res, shared.KindSystemMessage, shared.SystemMessage{Event: "ended", Text: "game ended: not enough players"})
	}
	v := r.view()
	res.Room = &v
	return res, nil
}

func (m *Manager) UpdateColor(sessionID string, color game.Color) (Result, error) {
	if !color.Valid() {
		return Result{}, ErrInvalidColor.with(fmt.Sprintf("unknown color %q", color), "color", string(color))
	}
	r, idx, err := m.locate(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer r.mu.Unlock()

	if r.Status != StatusWaiting {
		return Result{}, ErrGameAlreadyActive
	}
	if h := r.colorHolder(color); h >= 0 && h != idx {
		return Result{}, ErrColorTaken.with(fmt.Sprintf("%s is taken by %s", color, r.Players[h].Name), "color", string(color))
	}
	r.Players[idx].Color = color
	r.LastActivity = m.now()

	p := r.Players[idx]
	res := Result{Player: &p}
	m.emitRoom(r, &res, "color", fmt.Sprintf("%s switched to %s", p.Name, color))
	v := r.view()
	res.Room = &v
	return res, nil
}

func (m *Manager) ToggleReady(sessionID string) (Result, error) {
	r, idx, err := m.locate(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer r.mu.Unlock()

	if r.Status != StatusWaiting {
		return Result{}, ErrGameAlreadyActive
	}
	r.Players[idx].Ready = !r.Players[idx].Ready
	r.LastActivity = m.now()

	p := r.Players[idx]
	state := "ready"
	if !p.Ready {
		state = "not ready"
	}
	res := Result{Player: &p}
	m.emitRoom(r, &res, "ready", fmt.Sprintf("%s is %s", p.Name, state))
	v := r.view()
	res.Room = &v
	return res, nil
}

func (m *Manager) StartGame(sessionID string) (Result, error) {
	r, idx, err := m.locate(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer r.mu.Unlock()

	if r.Status != StatusWaiting {
		return Result{}, ErrGameAlreadyActive
	}
	if !r.Players[idx].Admin {
		return Result{}, ErrNotAdmin
	}
	if len(r.Players) < MinPlayers {
		return Result{}, ErrNotEnoughPlayers
	}
	var waiting []string
	for _, p := range r.Players {
		if !p.Admin && !p.Ready {
			waiting = append(waiting, p.Name)
		}
	}
	if len(waiting) > 0 {
		names := strings.Join(waiting, ", ")
		return Result{}, ErrPlayersNotReady.with("waiting for "+names, "players", names)
	}

	colors := make([]game.Color, len(r.Players))
	for i, p := range r.Players {
		colors[i] = p.Color
	}
	g := m.engine.Initialize(colors)
	r.Game = &g
	r.Status = StatusPlaying
	r.LastActivity = m.now()
	log.Printf("room %s: game started with %d players", r.Code, len(r.Players))

	res := Result{}
	m.emitRoom(r, &res, "started", "game started")
	m.emit(r, &res, shared.KindGameUpdated, g.Clone())
	v := r.view()
	res.Room = &v
	res.Game = v.Game
	return res, nil
}

func (m *Manager) RollDice(sessionID string) (Result, error) {
	r, idx, err := m.locateTurn(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer r.mu.Unlock()

	dice, next, err := m.engine.Roll(*r.Game)
	if err != nil {
		return Result{}, engineError(err)
	}
	r.Game = &next
	r.LastActivity = m.now()

	res := Result{Dice: dice, ValidMoves: append([]string{}, next.ValidMoves...)}
	p := r.Players[idx]
	res.Player = &p
	m.emit(r, &res, shared.KindGameUpdated, next.Clone())
	if next.Turn() != p.Color {
		m.emit(r, &res, shared.KindSystemMessage, shared.SystemMessage{
			Event: "skipped",
			Text:  fmt.Sprintf("%s rolled %d and cannot move", p.Name, dice),
		})
	}
	g := next.Clone()
	res.Game = &g
	return res, nil
}

func (m *Manager) MoveToken(sessionID, tokenID string) (Result, error) {
	r, idx, err := m.locateTurn(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer r.mu.Unlock()

	next, err := m.engine.Move(*r.Game, tokenID)
	if err != nil {
		return Result{}, engineError(err)
	}
	r.Game = &next
	r.LastActivity = m.now()

	p := r.Players[idx]
	res := Result{Player: &p}
	m.emit(r, &res, shared.KindGameUpdated, next.Clone())
	if rec := next.History[len(next.History)-1]; rec.CapturedTokenID != "" {
		m.emit(r, &res, shared.KindSystemMessage, shared.SystemMessage{
			Event: "capture",
			Text:  fmt.Sprintf("%s captured %s", p.Name, rec.CapturedTokenID),
		})
	}
	if next.Winner != nil {
		r.Status = StatusFinished
		log.Printf("room %s: %s (%s) won", r.Code, p.Name, *next.Winner)
		m.emit(r, &res, shared.KindGameWon, map[string]interface{}{
			"winner":   *next.Winner,
			"playerId": p.ID,
			"name":     p.Name,
		})
		m.emitRoom(r, &res, "win", fmt.Sprintf("%s wins!", p.Name))
	}
	g := next.Clone()
	res.Game = &g
	return res, nil
}

// ValidMoves lists the caller's movable tokens for the current dice.
func (m *Manager) ValidMoves(sessionID string) (Result, error) {
	r, idx, err := m.locate(sessionID)
	if err != nil {
		return Result{}, err
	}
	defer r.mu.Unlock()

	if r.Game == nil || r.Status != StatusPlaying {
		return Result{}, ErrGameNotRunning
	}
	moves := []string{}
	if r.Game.Turn() == r.Players[idx].Color {
		moves = game.ValidMoves(*r.Game, r.Players[idx].Color)
	}
	return Result{ValidMoves: moves}, nil
}

// RoomByCode fails with ErrNotFound for unknown or closed rooms.
func (m *Manager) RoomByCode(code string) (View, error) {
	code = NormalizeCode(code)
	r, ok := m.store.GetRoom(code)
	if !ok {
		return View{}, ErrNotFound.with(fmt.Sprintf("room %s not found", code), "code", code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return View{}, ErrNotFound.with(fmt.Sprintf("room %s not found", code), "code", code)
	}
	return r.view(), nil
}

// RoomBySession reports ok=false when the session has no active room.
func (m *Manager) RoomBySession(sessionID string) (View, bool) {
	r, _, err := m.locate(sessionID)
	if err != nil {
		return View{}, false
	}
	defer r.mu.Unlock()
	return r.view(), true
}

// PlayerBySession reports ok=false when the session has no active room.
func (m *Manager) PlayerBySession(sessionID string) (Player, bool) {
	r, idx, err := m.locate(sessionID)
	if err != nil {
		return Player{}, false
	}
	defer r.mu.Unlock()
	return r.Players[idx], true
}

// Rooms lists rooms that are still accepting players, oldest first.
func (m *Manager) Rooms() []View {
	out := []View{}
	for _, r := range m.store.Rooms() {
		r.mu.Lock()
		if !r.closed && r.Status == StatusWaiting && len(r.Players) < r.Capacity {
			out = append(out, r.view())
		}
		r.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b View) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

// ExpireInactive deletes every room idle for longer than threshold and
// returns their codes.
func (m *Manager) ExpireInactive(threshold time.Duration) []string {
	cutoff := m.now().Add(-threshold)
	var expired []string
	for _, r := range m.store.Rooms() {
		if m.expire(r, cutoff) {
			expired = append(expired, r.Code)
		}
	}
	if len(expired) > 0 {
		log.Printf("expired %d inactive rooms", len(expired))
	}
	return expired
}

func (m *Manager) expire(r *Room, cutoff time.Time) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("expire room %s: %v", r.Code, rec)
			ok = false
		}
	}()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.LastActivity.Before(cutoff) {
		return false
	}
	r.closed = true
	for _, p := range r.Players {
		m.store.ReleaseSession(p.SessionID)
	}
	m.store.DeleteRoom(r.Code)
	m.emit(r, &Result{}, shared.KindRoomClosed, shared.SystemMessage{Event: "expired", Text: "room closed after inactivity"})
	return true
}

// Janitor sweeps inactive rooms every interval until ctx is done.
func (m *Manager) Janitor(ctx context.Context, interval, threshold time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.ExpireInactive(threshold)
		}
	}
}

// locate resolves a session to its room and player index. On success the
// room lock is held and the caller must release it.
func (m *Manager) locate(sessionID string) (*Room, int, error) {
	code, ok := m.store.SessionRoom(sessionID)
	if !ok {
		return nil, -1, ErrNotInRoom
	}
	r, ok := m.store.GetRoom(code)
	if !ok {
		log.Printf("session bound to missing room %s", code)
		return nil, -1, ErrNotInRoom
	}
	r.mu.Lock()
	idx := r.playerIndex(sessionID)
	if r.closed || idx < 0 {
		r.mu.Unlock()
		return nil, -1, ErrNotInRoom
	}
	return r, idx, nil
}

// locateTurn is locate plus the checks shared by roll and move.
func (m *Manager) locateTurn(sessionID string) (*Room, int, error) {
	r, idx, err := m.locate(sessionID)
	if err != nil {
		return nil, -1, err
	}
	if r.Game == nil || r.Status != StatusPlaying || r.Game.Winner != nil {
		r.mu.Unlock()
		return nil, -1, ErrGameNotRunning
	}
	if r.Game.Turn() != r.Players[idx].Color {
		r.mu.Unlock()
		return nil, -1, ErrNotYourTurn.with(fmt.Sprintf("it is %s's turn", r.Game.Turn()), "turn", string(r.Game.Turn()))
	}
	return r, idx, nil
}

// emit stamps the next sequence number and publishes. Caller holds r.mu.
func (m *Manager) emit(r *Room, res *Result, kind shared.Kind, payload interface{}) {
	r.seq++
	n := shared.Notification{Seq: r.seq, Kind: kind, RoomCode: r.Code, Payload: payload}
	res.Notifications = append(res.Notifications, n)
	res.Seq = n.Seq
	m.broadcaster.Publish(n)
}

// emitRoom publishes a room snapshot followed by a system message.
func (m *Manager) emitRoom(r *Room, res *Result, event, text string) {
	m.emit(r, res, shared.KindRoomUpdated, r.view())
	m.emit(r, res, shared.KindSystemMessage, shared.SystemMessage{Event: event, Text: text})
}

func firstFreeColor(r *Room) (game.Color, bool) {
	for _, c := range game.Colors {
		if r.colorHolder(c) < 0 {
			return c, true
		}
	}
	return "", false
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func engineError(err error) error {
	if errors.Is(err, game.ErrIllegalAction) {
		return ErrIllegalMove.with(err.Error())
	}
	return err
}
