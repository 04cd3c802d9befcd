package main

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	errInvalidNotation = errors.New("invalid notation")
	errInvalidMove     = errors.New("invalid move format")
)

// Square board coordinate.
type Square struct {
	Row int
	Col int
}

type move struct {
	depart Square
	dest   Square
}

func (square Square) valid() bool {
	return square.Row >= 0 && square.Row < 8 && square.Col >= 0 && square.Col < 8
}

// String renders square as file letter and rank digit. The result is
// meaningless for squares off the board.
func (square Square) String() string {
	return string([]rune{rune('a' + square.Col), rune('8' - square.Row)})
}

// parseSquare reads a two character notation. It does not check that the
// resulting square lies on the board.
func parseSquare(s string) (Square, error) {
	if utf8.RuneCountInString(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", errInvalidNotation, s)
	}
	r := []rune(s)
	return Square{Row: 8 - (int(r[1]) - '0'), Col: int(r[0]) - 'a'}, nil
}

// MarshalText text.
func (square Square) MarshalText() ([]byte, error) {
	if !square.valid() {
		return nil, fmt.Errorf("square off board: %d,%d", square.Row, square.Col)
	}
	return []byte(square.String()), nil
}

// UnmarshalText text.
func (square *Square) UnmarshalText(text []byte) error {
	s, err := parseSquare(string(text))
	if err != nil {
		return err
	}
	*square = s
	return nil
}

func allSquares() []Square {
	squares := make([]Square, 0, 64)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			squares = append(squares, Square{Row: row, Col: col})
		}
	}
	return squares
}

// parseMove splits a four character from+to string into two notations.
func parseMove(s string) (move, error) {
	r := []rune(s)
	if len(r) != 4 {
		return move{}, fmt.Errorf("%w %d %s", errInvalidMove, len(r), s)
	}
	depart, err := parseSquare(string(r[:2]))
	if err != nil {
		return move{}, fmt.Errorf("%w %s: %v", errInvalidMove, s, err)
	}
	dest, err := parseSquare(string(r[2:]))
	if err != nil {
		return move{}, fmt.Errorf("%w %s: %v", errInvalidMove, s, err)
	}
	return move{depart: depart, dest: dest}, nil
}
