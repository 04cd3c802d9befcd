package main

import (
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type agentRequest struct {
	Type   string
	GameID uuid.UUID
}

type gameRequest struct {
	Minutes *int
}

type playRequest struct {
	Move       *move
	Suggestion string
}

type gameResponse struct {
	Href string
	FEN  string
	Game Game
}

type gamesResponse struct {
	Href  string
	Games []Game
}

type playsResponse struct {
	Href    string
	Turn    Color
	Moves   []move
	Origins []string
	History []string
}

type pieceResponse struct {
	Color Color
	Kind  Kind
	Moved bool
}

type squareResponse struct {
	Href            string
	Square          Square
	Piece           *pieceResponse
	AttackedByWhite bool
	AttackedByBlack bool
}

func errToHTTP(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.ErrNotFound
	}
	return err
}

func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func requestAgent(c echo.Context) (*Game, uuid.UUID, error) {
	id, err := requestID(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	game, err := getAgent(id)
	return game, id, err
}

func requestGame(c echo.Context) (*Game, error) {
	id, err := requestID(c)
	if err != nil {
		return nil, err
	}
	return getGame(id)
}

func requestSquare(c echo.Context) (Square, error) {
	square, err := parseSquare(c.Param("square"))
	if err != nil {
		return Square{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !square.valid() {
		return Square{}, echo.NewHTTPError(http.StatusBadRequest, "square out of range")
	}
	return square, nil
}

func responseAgent(game *Game, agentID uuid.UUID) gameResponse {
	return gameResponse{Game: game.response(agentID), FEN: game.Board.fen(game.Turn, game.MoveCount), Href: path.Join("/agents", agentID.String())}
}

func responseGame(game *Game) gameResponse {
	return gameResponse{Game: game.response(uuid.Nil), FEN: game.Board.fen(game.Turn, game.MoveCount), Href: path.Join("/games", game.GameID.String())}
}

func responseGames(games []Game) gamesResponse {
	for i := range games {
		games[i] = games[i].response(uuid.Nil)
	}
	return gamesResponse{Games: games, Href: "/games"}
}

func responsePlays(game *Game) playsResponse {
	moves := game.Board.movesForBoard(game.Turn)
	origins := make(map[string]bool, len(moves))
	for _, m := range moves {
		origins[m.depart.String()] = true
	}
	keys := maps.Keys(origins)
	slices.Sort(keys)
	return playsResponse{
		Href:    path.Join("/games", game.GameID.String(), "plays"),
		Turn:    game.Turn,
		Moves:   moves,
		Origins: keys,
		History: game.history(),
	}
}

func responseSquare(game *Game, square Square) squareResponse {
	response := squareResponse{
		Href:            path.Join("/games", game.GameID.String(), "squares", square.String()),
		Square:          square,
		AttackedByWhite: game.Board.underAttack(square, White),
		AttackedByBlack: game.Board.underAttack(square, Black),
	}
	if piece, ok := game.Board.occupant(square); ok {
		response.Piece = &pieceResponse{Color: piece.Color, Kind: piece.Kind, Moved: piece.HasMoved()}
	}
	return response
}

func apiHandler() *echo.Echo {
	e := echo.New()

	e.POST("/agents", func(c echo.Context) error {
		var message agentRequest
		if err := c.Bind(&message); err != nil {
			return err
		}
		switch message.Type {
		case "":
			message.Type = "agent"
		case "agent", "provider", "user":
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "unknown agent type")
		}
		game, err := getGame(message.GameID)
		if err != nil {
			return errToHTTP(err)
		}
		id, err := game.makeAgent(message.Type)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusCreated, responseAgent(game, id))
	})
	e.GET("/agents/:id", func(c echo.Context) error {
		game, id, err := requestAgent(c)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseAgent(game, id))
	})
	e.PUT("/agents/:id", func(c echo.Context) error {
		game, id, err := requestAgent(c)
		if err != nil {
			return errToHTTP(err)
		}
		var request playRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		if err := game.playRound(id, request); err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseAgent(game, id))
	})
	e.POST("/agents/:id", func(c echo.Context) error {
		game, id, err := requestAgent(c)
		if err != nil {
			return errToHTTP(err)
		}
		if err := game.pokeAgent(); err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseAgent(game, id))
	})
	e.GET("/games", func(c echo.Context) error {
		games, err := getGames()
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseGames(games))
	})
	e.POST("/games", func(c echo.Context) error {
		var request gameRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		clock := timeControl
		if request.Minutes != nil {
			if *request.Minutes < 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "negative time control")
			}
			clock = time.Duration(*request.Minutes) * time.Minute
		}
		game, err := makeGame(clock)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusCreated, responseGame(game))
	})
	e.GET("/games/:id", func(c echo.Context) error {
		game, err := requestGame(c)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseGame(game))
	})
	e.GET("/games/:id/plays", func(c echo.Context) error {
		game, err := requestGame(c)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responsePlays(game))
	})
	e.GET("/games/:id/squares/:square", func(c echo.Context) error {
		square, err := requestSquare(c)
		if err != nil {
			return err
		}
		game, err := requestGame(c)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseSquare(game, square))
	})

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	return e
}
