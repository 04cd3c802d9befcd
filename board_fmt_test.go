package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	. "gopkg.in/check.v1"
)

type FmtSuite struct{}

var _ = Suite(&FmtSuite{})

func (s *FmtSuite) TestSquareRoundTrip(c *C) {
	for _, square := range allSquares() {
		parsed, err := parseSquare(square.String())
		c.Assert(err, IsNil)
		c.Assert(parsed, Equals, square)
	}
}

func (s *FmtSuite) TestSquareNotation(c *C) {
	c.Assert(Square{Row: 0, Col: 0}.String(), Equals, "a8")
	c.Assert(Square{Row: 7, Col: 7}.String(), Equals, "h1")
	c.Assert(Square{Row: 6, Col: 4}.String(), Equals, "e2")
	square, err := parseSquare("e2")
	c.Assert(err, IsNil)
	c.Assert(square, Equals, Square{Row: 6, Col: 4})
}

func (s *FmtSuite) TestParseSquareLength(c *C) {
	for _, notation := range []string{"", "e", "e55", "e2e4", "é", "é12"} {
		_, err := parseSquare(notation)
		c.Assert(errors.Is(err, errInvalidNotation), Equals, true, Commentf("notation %q", notation))
	}
}

func (s *FmtSuite) TestParseSquareNoRangeCheck(c *C) {
	square, err := parseSquare("z9")
	c.Assert(err, IsNil)
	c.Assert(square.valid(), Equals, false)
	c.Assert(square, Equals, Square{Row: -1, Col: 25})
}

func (s *FmtSuite) TestParseSquareCountsCharacters(c *C) {
	square, err := parseSquare("é1")
	c.Assert(err, IsNil)
	c.Assert(square.valid(), Equals, false)
	c.Assert(square.String(), Equals, "é1")
}

func (s *FmtSuite) TestSquareText(c *C) {
	text, err := json.Marshal(Square{Row: 1, Col: 3})
	c.Assert(err, IsNil)
	c.Assert(string(text), Equals, `"d7"`)
	var square Square
	c.Assert(json.Unmarshal([]byte(`"g1"`), &square), IsNil)
	c.Assert(square, Equals, Square{Row: 7, Col: 6})
	_, err = json.Marshal(Square{Row: 8, Col: 0})
	c.Assert(err, NotNil)
}

func (s *FmtSuite) TestParseMove(c *C) {
	m, err := parseMove("e7e5")
	c.Assert(err, IsNil)
	c.Assert(m, cmpEquals, move{depart: Square{Row: 1, Col: 4}, dest: Square{Row: 3, Col: 4}})
	c.Assert(m.String(), Equals, "e7e5")
	for _, notation := range []string{"", "e7", "e7e", "e7e5e", "e2é", "e2e4é"} {
		_, err := parseMove(notation)
		c.Assert(errors.Is(err, errInvalidMove), Equals, true)
	}
}

func (s *FmtSuite) TestMoveJSON(c *C) {
	m, err := parseMove("g1f3")
	c.Assert(err, IsNil)
	text, err := json.Marshal(m)
	c.Assert(err, IsNil)
	c.Assert(string(text), Equals, `"g1f3"`)
	var decoded move
	c.Assert(json.Unmarshal(text, &decoded), IsNil)
	c.Assert(decoded, cmpEquals, m)
	c.Assert(json.Unmarshal([]byte(`"g1"`), &decoded), NotNil)
	c.Assert(json.Unmarshal([]byte(`"e2e4 h7h5"`), &decoded), NotNil)
	c.Assert(json.Unmarshal([]byte(`" e2e4"`), &decoded), NotNil)
}

func (s *FmtSuite) TestMoveScan(c *C) {
	var first, second move
	n, err := fmt.Sscan("e2e4 e7e5", &first, &second)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, 2)
	c.Assert(first.String(), Equals, "e2e4")
	c.Assert(second.String(), Equals, "e7e5")
}

func (s *FmtSuite) TestFmtBoard(c *C) {
	value, err := chessState{}.Value()
	c.Assert(err, IsNil)
	c.Assert(value, Equals, strings.Repeat("00", 64))
	value, err = newBoard().Value()
	c.Assert(err, IsNil)
	c.Assert(value, Equals, "0406080a0c080604"+"0202020202020202"+strings.Repeat("00", 32)+"0303030303030303"+"0507090b0d090705")
}

func (s *FmtSuite) TestScanBoard(c *C) {
	board := newBoard()
	board.applyMove(Square{Row: 7, Col: 6}, Square{Row: 5, Col: 5})
	value, err := board.Value()
	c.Assert(err, IsNil)
	var scanned chessState
	c.Assert(scanned.Scan(value), IsNil)
	c.Assert(scanned, cmpEquals, board)
	c.Assert(scanned.Scan([]byte(value.(string))), IsNil)
	c.Assert(scanned, cmpEquals, board)
	c.Assert(scanned.Scan("00"), ErrorMatches, "board is not length 64: 1")
	c.Assert(scanned.Scan(12), ErrorMatches, "invalid format scaning 12")
	c.Assert(scanned.Scan("  "), NotNil)
}

func (s *FmtSuite) TestPieceLetters(c *C) {
	c.Assert(Piece{Color: White, Kind: Knight}.String(), Equals, "N")
	c.Assert(Piece{Color: Black, Kind: Queen}.String(), Equals, "q")
	c.Assert(Piece{}.String(), Equals, "")
	piece, ok := pieceFromLetter('K')
	c.Assert(ok, Equals, true)
	c.Assert(piece, Equals, Piece{Color: White, Kind: King})
	_, ok = pieceFromLetter('x')
	c.Assert(ok, Equals, false)
}

func (s *FmtSuite) TestFEN(c *C) {
	board := newBoard()
	c.Assert(board.fen(White, 0), Equals, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	board.applyMove(Square{Row: 6, Col: 4}, Square{Row: 4, Col: 4})
	c.Assert(board.fen(Black, 1), Equals, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	board.applyMove(Square{Row: 7, Col: 7}, Square{Row: 5, Col: 7})
	board.applyMove(Square{Row: 0, Col: 4}, Square{Row: 1, Col: 4})
	c.Assert(board.castling(), Equals, "Q")
	c.Assert(chessState{}.castling(), Equals, "-")
}

func (s *FmtSuite) TestParsePlacement(c *C) {
	board, err := parsePlacement(newBoard().placement())
	c.Assert(err, IsNil)
	c.Assert(board, cmpEquals, newBoard())

	board, err = parsePlacement("4k3/8/8/8/8/8/8/4K2R")
	c.Assert(err, IsNil)
	c.Assert(board[7][4], Equals, Piece{Color: White, Kind: King})
	c.Assert(board[0][4], Equals, Piece{Color: Black, Kind: King})

	board, err = parsePlacement("8/8/8/8/4P3/8/8/8")
	c.Assert(err, IsNil)
	c.Assert(board[4][4].HasMoved(), Equals, true)

	_, err = parsePlacement("8/8/8")
	c.Assert(err, ErrorMatches, "board is not length 8: 3")
	_, err = parsePlacement("8/8/8/8/8/8/8/7")
	c.Assert(err, ErrorMatches, "row 7 is not length 8: 7")
	_, err = parsePlacement("8/8/8/8/8/8/8/7x")
	c.Assert(err, ErrorMatches, "row 7 is invalid: 7x")
}

func (s *FmtSuite) TestBoardJSON(c *C) {
	text, err := json.Marshal(newBoard())
	c.Assert(err, IsNil)
	c.Assert(string(text), Equals, `"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"`)
	var board chessState
	c.Assert(json.Unmarshal(text, &board), IsNil)
	c.Assert(board, cmpEquals, newBoard())
}

func (s *FmtSuite) TestBoardString(c *C) {
	lines := strings.Split(newBoard().String(), "\n")
	c.Assert(lines, HasLen, 9)
	c.Assert(lines[0], Equals, "8 ♜♞♝♛♚♝♞♜")
	c.Assert(lines[4], Equals, "4 ········")
	c.Assert(lines[7], Equals, "1 ♖♘♗♕♔♗♘♖")
	c.Assert(lines[8], Equals, "  abcdefgh")
}

func (s *FmtSuite) TestColorAndKindText(c *C) {
	text, err := json.Marshal(Piece{Color: White, Kind: Bishop})
	c.Assert(err, IsNil)
	c.Assert(string(text), Equals, `{"Color":"white","Kind":"bishop"}`)
	var piece Piece
	c.Assert(json.Unmarshal([]byte(`{"Color":"black","Kind":"rook"}`), &piece), IsNil)
	c.Assert(piece, Equals, Piece{Color: Black, Kind: Rook})
	c.Assert(json.Unmarshal([]byte(`{"Color":"green"}`), &piece), NotNil)
	c.Assert(json.Unmarshal([]byte(`{"Kind":"dragon"}`), &piece), NotNil)
}
