package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Game game.
type Game struct {
	gorm.Model

	ActiveAgent       uuid.UUID `gorm:"type:varchar;size:36;index"`
	ActiveAgentType   string
	BlackClock        time.Duration
	Board             chessState `gorm:"type:varchar;size:128;not null"`
	CapturedByBlack   string
	CapturedByWhite   string
	End               bool
	GameID            uuid.UUID `gorm:"<-:create;type:varchar;size:36;uniqueIndex"`
	InactiveAgent     uuid.UUID `gorm:"type:varchar;size:36;index"`
	InactiveAgentType string
	MoveCount         int
	Plays             []Play
	TimeControl       time.Duration
	Turn              Color
	TurnStarted       time.Time
	WhiteClock        time.Duration
	Winner            string
}

// maxPlies is the ply count at which a game ends drawn.
const maxPlies = 4048

// Play is one accepted move of a game.
type Play struct {
	gorm.Model

	GameID   uint `gorm:"index"`
	Captured string
	Color    Color
	Move     string `gorm:"type:varchar;size:4"`
	Ply      int
}

func newGame(timeControl time.Duration) Game {
	return Game{
		GameID:        uuid.NewV4(),
		ActiveAgent:   placeHolder,
		InactiveAgent: placeHolder,
		Board:         newBoard(),
		Turn:          White,
		TimeControl:   timeControl,
		WhiteClock:    timeControl,
		BlackClock:    timeControl,
	}
}

func gameIdle() error {
	var games []Game
	if err := db.Where("time_control > 0").Not(Game{End: true}).Not(Game{InactiveAgent: placeHolder}).Find(&games).Error; err != nil {
		return err
	}
	now := time.Now()
	for _, game := range games {
		if !game.expired(now) {
			continue
		}
		game.timeout()
		if err := db.Omit(clause.Associations).Save(&game).Error; err != nil {
			return err
		}
	}
	return db.Where(Game{End: true}).Not(Game{ActiveAgentType: "user"}).Not(Game{InactiveAgentType: "user"}).Delete(&Game{}).Error
}

func makeGame(timeControl time.Duration) (*Game, error) {
	game := newGame(timeControl)
	if err := db.Create(&game).Error; err != nil {
		return nil, err
	}
	return getGame(game.GameID)
}

func getGame(id uuid.UUID) (*Game, error) {
	var game Game
	if err := db.Preload("Plays", func(db *gorm.DB) *gorm.DB {
		return db.Order("ply")
	}).First(&game, Game{GameID: id}).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func getGames() ([]Game, error) {
	var games []Game
	if err := db.Where(Game{InactiveAgent: placeHolder}).Find(&games).Error; err != nil {
		return nil, err
	}
	for i := range games {
		games[i].ActiveAgent = uuid.Nil
	}
	return games, nil
}

func (game Game) response(agentID uuid.UUID) Game {
	if !game.End {
		if !uuid.Equal(game.ActiveAgent, agentID) {
			game.ActiveAgent = uuid.Nil
		}
		if !uuid.Equal(game.InactiveAgent, agentID) {
			game.InactiveAgent = uuid.Nil
		}
	}
	return game
}

// join seats id in the first free chair; the clocks start once both are
// taken.
func (game *Game) join(id uuid.UUID, agentType string, now time.Time) error {
	if !uuid.Equal(placeHolder, game.InactiveAgent) {
		return echo.NewHTTPError(http.StatusBadRequest, "game is full")
	}
	if uuid.Equal(placeHolder, game.ActiveAgent) {
		game.ActiveAgent = id
		game.ActiveAgentType = agentType
		return nil
	}
	game.InactiveAgent = id
	game.InactiveAgentType = agentType
	game.TurnStarted = now
	return nil
}

func (game *Game) addAgent(id uuid.UUID, agentType string) error {
	if err := game.join(id, agentType, time.Now()); err != nil {
		return err
	}
	if err := db.Omit(clause.Associations).Save(game).Error; err != nil {
		return err
	}
	if !uuid.Equal(placeHolder, game.InactiveAgent) {
		return game.pokeAgent()
	}
	return nil
}

func (game *Game) pokeAgent() error {
	if game.ActiveAgentType == "agent" {
		return game.playRound(game.ActiveAgent, playRequest{})
	}
	return nil
}

func (game Game) clock() time.Duration {
	if game.Turn == White {
		return game.WhiteClock
	}
	return game.BlackClock
}

func (game *Game) setClock(remaining time.Duration) {
	if game.Turn == White {
		game.WhiteClock = remaining
	} else {
		game.BlackClock = remaining
	}
}

// remaining is the time left to the side to move at now.
func (game Game) remaining(now time.Time) time.Duration {
	if game.TurnStarted.IsZero() {
		return game.clock()
	}
	return game.clock() - now.Sub(game.TurnStarted)
}

func (game Game) expired(now time.Time) bool {
	return game.TimeControl > 0 && !game.End && !game.TurnStarted.IsZero() && game.remaining(now) <= 0
}

func (game *Game) timeout() {
	game.setClock(0)
	game.End = true
	game.Winner = game.Turn.other().String()
}

// play validates m for the side to move and applies it, recording the
// capture, the history entry and the clock.
func (game *Game) play(m move, now time.Time) error {
	if game.End {
		return echo.NewHTTPError(http.StatusBadRequest, "game is over")
	}
	if game.expired(now) {
		game.timeout()
		return echo.NewHTTPError(http.StatusNotAcceptable, "time expired")
	}
	if !game.Board.legalMove(m.depart, m.dest, game.Turn) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid move")
	}
	captured, _ := game.Board.occupant(m.dest)
	if !captured.empty() {
		if game.Turn == White {
			game.CapturedByWhite += captured.String()
		} else {
			game.CapturedByBlack += captured.String()
		}
	}
	game.Board.applyMove(m.depart, m.dest)
	game.MoveCount = game.MoveCount + 1
	game.Plays = append(game.Plays, Play{
		Captured: captured.String(),
		Color:    game.Turn,
		Move:     m.String(),
		Ply:      game.MoveCount,
	})
	if game.TimeControl > 0 && !game.TurnStarted.IsZero() {
		game.setClock(game.remaining(now))
		game.TurnStarted = now
	}
	game.Turn = game.Turn.other()
	game.InactiveAgent, game.ActiveAgent = game.ActiveAgent, game.InactiveAgent
	game.InactiveAgentType, game.ActiveAgentType = game.ActiveAgentType, game.InactiveAgentType
	game.End = game.MoveCount >= maxPlies
	return nil
}

func (game *Game) putMove(m move) error {
	if err := game.play(m, time.Now()); err != nil {
		if game.End {
			if saveErr := db.Omit(clause.Associations).Save(game).Error; saveErr != nil {
				return saveErr
			}
		}
		return err
	}
	if err := db.Save(game).Error; err != nil {
		return err
	}
	if game.InactiveAgentType == game.ActiveAgentType {
		next := *game
		go func() {
			idleError("poke agent", next.pokeAgent())
		}()
		return nil
	}
	return game.pokeAgent()
}

func (game Game) history() []string {
	moves := make([]string, 0, len(game.Plays))
	for _, play := range game.Plays {
		moves = append(moves, play.Move)
	}
	return moves
}
