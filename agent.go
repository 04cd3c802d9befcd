package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	uuid "github.com/satori/go.uuid"
)

var errNoMoves = errors.New("no moves available")

func agentIdle() error {
	var games []Game
	thirtySecondsAgo := time.Now().Add(time.Second * -30)
	if err := db.Where("updated_at < ?", thirtySecondsAgo).Where(Game{ActiveAgentType: "agent"}).Not(db.Where(Game{InactiveAgent: placeHolder}).Or(Game{End: true})).Find(&games).Error; err != nil {
		return err
	}
	for _, game := range games {
		game, err := getGame(game.GameID)
		if err != nil {
			return err
		}
		if err := game.pokeAgent(); err != nil {
			return err
		}
	}
	return nil
}

func (game *Game) makeAgent(agentType string) (uuid.UUID, error) {
	id := uuid.NewV4()
	if err := game.addAgent(id, agentType); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func getAgent(id uuid.UUID) (*Game, error) {
	var game Game
	if err := db.Where(Game{ActiveAgent: id}).Or(Game{InactiveAgent: id}).First(&game).Error; err != nil {
		return nil, err
	}
	return getGame(game.GameID)
}

func (game *Game) playRound(id uuid.UUID, request playRequest) error {
	if !uuid.Equal(id, game.ActiveAgent) {
		return echo.NewHTTPError(http.StatusNotAcceptable, "not your turn")
	}
	switch game.ActiveAgentType {
	case "user":
		if request.Move == nil {
			return echo.NewHTTPError(http.StatusNotAcceptable, "player must provide move")
		}
		return game.putMove(*request.Move)
	case "provider":
		if request.Suggestion == "" {
			return echo.NewHTTPError(http.StatusNotAcceptable, "provider must provide suggestion")
		}
		m, err := game.Board.suggestedMove(request.Suggestion, game.Turn)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotAcceptable, err.Error())
		}
		return game.putMove(m)
	}
	if game.End {
		return nil
	}
	m, err := decide(game.Board, game.Turn)
	if err != nil {
		if errors.Is(err, errNoMoves) {
			return echo.NewHTTPError(http.StatusNotAcceptable, err.Error())
		}
		return err
	}
	return game.putMove(m)
}

// parseSuggestion pulls a from+to move out of free text by dropping every
// character outside a-h and 1-8 and reading the first four left.
func parseSuggestion(text string) (move, error) {
	filtered := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'h') || (r >= '1' && r <= '8') {
			return r
		}
		return -1
	}, text)
	if len(filtered) < 4 {
		return move{}, fmt.Errorf("%w: suggestion too short %q", errInvalidMove, filtered)
	}
	return parseMove(filtered[:4])
}

// suggestedMove turns provider text into a legal move for color, falling back
// to the default opening move and then to the first legal move.
func (board chessState) suggestedMove(text string, color Color) (move, error) {
	m, err := parseSuggestion(text)
	if err != nil {
		log.WithError(err).WithField("suggestion", text).Warn("unreadable suggestion")
		m, err = parseMove(defaultSuggestion[color])
		if err != nil {
			return move{}, err
		}
	}
	if board.legalMove(m.depart, m.dest, color) {
		return m, nil
	}
	log.WithField("move", m.String()).WithField("color", color.String()).Warn("illegal suggestion")
	moves := board.movesForBoard(color)
	if len(moves) == 0 {
		return move{}, errNoMoves
	}
	return moves[0], nil
}

func (board chessState) captureScore(m move) int {
	captured, ok := board.occupant(m.dest)
	if !ok {
		return 0
	}
	return captureValue[captured.Kind]
}

func decide(board chessState, color Color) (move, error) {
	moves := board.movesForBoard(color)
	if len(moves) == 0 {
		return move{}, errNoMoves
	}
	scores := make([]int, 0, len(moves))
	for _, m := range moves {
		scores = append(scores, board.captureScore(m))
	}
	percentile, err := stats.Percentile(stats.LoadRawData(scores), 80)
	if err != nil {
		return move{}, err
	}
	lowScore := int(math.Round(percentile))
	choices := make([]move, 0, len(moves)*len(moves))
	for i, m := range moves {
		if lowScore <= scores[i] {
			count := (scores[i] - lowScore) + 1
			if count > len(moves) {
				count = len(moves)
			}
			for j := 0; j < count; j++ {
				choices = append(choices, m)
			}
		}
	}
	choice, err := rand.Int(rand.Reader, big.NewInt(int64(len(choices))))
	if err != nil {
		return move{}, err
	}
	return choices[choice.Uint64()], nil
}
