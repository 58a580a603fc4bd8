// Command autoplay plays a full Ludo game in the terminal through the room
// manager, with heuristic bots and optionally one human seat.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"ludo-server/internal/game"
	"ludo-server/internal/room"
	"ludo-server/internal/store"
)

func main() {
	players := flag.Int("players", 4, "number of seats (2-4)")
	human := flag.Bool("human", false, "play the first seat yourself")
	maxRolls := flag.Int("max-rolls", 5000, "give up after this many rolls")
	flag.Parse()

	m := room.NewManager(store.NewMemoryStore())
	seats := make([]string, *players)
	for i := range seats {
		seats[i] = fmt.Sprintf("seat-%d", i)
	}

	created, err := m.CreateRoom(seats[0], name(0, *human), game.Colors[0], *players)
	if err != nil {
		log.Fatalf("create room: %v", err)
	}
	for i := 1; i < len(seats); i++ {
		if _, err := m.JoinRoom(seats[i], created.Room.Code, name(i, false)); err != nil {
			log.Fatalf("join: %v", err)
		}
		if _, err := m.ToggleReady(seats[i]); err != nil {
			log.Fatalf("ready: %v", err)
		}
	}
	if _, err := m.StartGame(seats[0]); err != nil {
		log.Fatalf("start: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	bySeat := map[game.Color]string{}
	for _, s := range seats {
		p, _ := m.PlayerBySession(s)
		bySeat[p.Color] = s
	}

	for rolls := 0; rolls < *maxRolls; rolls++ {
		v, _ := m.RoomByCode(created.Room.Code)
		g := v.Game
		if g.Winner != nil {
			break
		}
		turn := g.Turn()
		sid := bySeat[turn]
		isHuman := *human && sid == seats[0]

		fmt.Printf("\nTurn: %s\n", turn)
		printBoard(*g)
		if isHuman {
			fmt.Print("press enter to roll ")
			reader.ReadString('\n')
		}

		res, err := m.RollDice(sid)
		if err != nil {
			log.Fatalf("roll: %v", err)
		}
		fmt.Printf("%s rolled %d\n", turn, res.Dice)
		if len(res.ValidMoves) == 0 {
			fmt.Println("no legal move, turn passes")
			continue
		}

		tokenID, _ := game.ChooseMove(*res.Game, game.DefaultWeights)
		if isHuman {
			tokenID = ask(reader, res.ValidMoves)
		}
		moved, err := m.MoveToken(sid, tokenID)
		if err != nil {
			log.Fatalf("move %s: %v", tokenID, err)
		}
		last := moved.Game.History[len(moved.Game.History)-1]
		fmt.Printf("%s moves %s: %d -> %d\n", turn, tokenID, last.From, last.To)
		if last.CapturedTokenID != "" {
			fmt.Printf("%s captured %s\n", turn, last.CapturedTokenID)
		}
	}

	v, _ := m.RoomByCode(created.Room.Code)
	fmt.Println("\nGame over!")
	js, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(js))
}

func name(i int, human bool) string {
	if human {
		return "You"
	}
	return fmt.Sprintf("CPU %d", i+1)
}

func ask(r *bufio.Reader, moves []string) string {
	fmt.Printf("movable: %s\n", strings.Join(moves, " "))
	for {
		fmt.Print("> ")
		line, _ := r.ReadString('\n')
		id := strings.TrimSpace(line)
		if slices.Contains(moves, id) {
			return id
		}
		fmt.Println("not a movable token, try again")
	}
}

func printBoard(s game.State) {
	for _, c := range s.Order {
		var cells []string
		for _, t := range s.Tokens {
			if t.Color != c {
				continue
			}
			switch {
			case t.IsHome():
				cells = append(cells, "H")
			case t.IsFinished():
				cells = append(cells, "F")
			case t.InLane():
				cells = append(cells, fmt.Sprintf("L%d", t.Position-game.LaneStart+1))
			default:
				cells = append(cells, fmt.Sprint(t.Position))
			}
		}
		fmt.Printf("  %-6s %s\n", c, strings.Join(cells, " "))
	}
}
