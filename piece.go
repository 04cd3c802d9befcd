package main

import "fmt"

// Color side.
type Color uint8

// Kind piece kind.
type Kind uint8

// Piece is a colored piece kind plus whether it has ever been relocated.
// The zero Piece is an empty square.
type Piece struct {
	Color Color
	Kind  Kind

	moved bool
}

func (color Color) other() Color {
	if color == White {
		return Black
	}
	return White
}

func (color Color) String() string {
	if color == White {
		return "white"
	}
	return "black"
}

// MarshalText text.
func (color Color) MarshalText() ([]byte, error) {
	return []byte(color.String()), nil
}

// UnmarshalText text.
func (color *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*color = White
	case "black":
		*color = Black
	default:
		return fmt.Errorf("invalid color %q", text)
	}
	return nil
}

func (kind Kind) String() string {
	if name, ok := kindToName[kind]; ok {
		return name
	}
	return "none"
}

// MarshalText text.
func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// UnmarshalText text.
func (kind *Kind) UnmarshalText(text []byte) error {
	for k, name := range kindToName {
		if name == string(text) {
			*kind = k
			return nil
		}
	}
	if string(text) == "none" {
		*kind = none
		return nil
	}
	return fmt.Errorf("invalid kind %q", text)
}

// HasMoved reports whether the board ever relocated this piece.
func (piece Piece) HasMoved() bool {
	return piece.moved
}

func (piece *Piece) markMoved() {
	piece.moved = true
}

func (piece Piece) empty() bool {
	return piece.Kind == none
}

func (piece Piece) homeRow() int {
	if piece.Color == White {
		return 6
	}
	return 1
}

func (piece Piece) direction() int {
	if piece.Color == White {
		return -1
	}
	return 1
}

// validMove reports whether piece, standing on from, may move to to. It only
// reads board and never looks at check.
func (piece Piece) validMove(board chessState, from, to Square) bool {
	if occupant, ok := board.occupant(to); ok && occupant.Color == piece.Color {
		return false
	}
	switch piece.Kind {
	case Bishop:
		return piece.validBishopMove(board, from, to)
	case King:
		return piece.validKingMove(board, from, to)
	case Knight:
		return piece.validKnightMove(from, to)
	case Pawn:
		return piece.validPawnMove(board, from, to)
	case Queen:
		return piece.validQueenMove(board, from, to)
	case Rook:
		return piece.validRookMove(board, from, to)
	}
	return false
}

func (piece Piece) validPawnMove(board chessState, from, to Square) bool {
	direction := piece.direction()
	rowShift := to.Row - from.Row
	colShift := to.Col - from.Col
	_, occupied := board.occupant(to)
	if colShift == 0 {
		if rowShift == direction {
			return !occupied
		}
		if rowShift == 2*direction && from.Row == piece.homeRow() {
			_, blocked := board.occupant(Square{Row: from.Row + direction, Col: from.Col})
			return !occupied && !blocked
		}
		return false
	}
	return abs(colShift) == 1 && rowShift == direction && occupied
}

func (piece Piece) validRookMove(board chessState, from, to Square) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	return board.clearPath(from, to)
}

func (piece Piece) validKnightMove(from, to Square) bool {
	rowShift := abs(to.Row - from.Row)
	colShift := abs(to.Col - from.Col)
	return (rowShift == 2 && colShift == 1) || (rowShift == 1 && colShift == 2)
}

func (piece Piece) validBishopMove(board chessState, from, to Square) bool {
	if abs(to.Row-from.Row) != abs(to.Col-from.Col) {
		return false
	}
	return board.clearPath(from, to)
}

func (piece Piece) validQueenMove(board chessState, from, to Square) bool {
	return piece.validRookMove(board, from, to) || piece.validBishopMove(board, from, to)
}

// validKingMove allows any adjacent square and castling. Neither consults
// underAttack.
func (piece Piece) validKingMove(board chessState, from, to Square) bool {
	rowShift := abs(to.Row - from.Row)
	colShift := to.Col - from.Col
	if rowShift <= 1 && abs(colShift) <= 1 {
		return true
	}
	if rowShift != 0 || abs(colShift) != 2 || piece.moved {
		return false
	}
	rookSquare := castleRookSquare(from, colShift)
	rook, ok := board.occupant(rookSquare)
	if !ok || rook.Kind != Rook || rook.Color != piece.Color || rook.moved {
		return false
	}
	return board.clearPath(from, rookSquare)
}

// castleRookSquare is the home square of the rook on the side the king
// shifts toward.
func castleRookSquare(from Square, colShift int) Square {
	if colShift > 0 {
		return Square{Row: from.Row, Col: 7}
	}
	return Square{Row: from.Row, Col: 0}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
