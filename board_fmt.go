package main

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func (m *move) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	parsed, err := parseMove(string(token))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m move) String() string {
	return m.depart.String() + m.dest.String()
}

func (m *move) UnmarshalJSON(bytes []byte) error {
	var state string
	if err := json.Unmarshal(bytes, &state); err != nil {
		return err
	}
	parsed, err := parseMove(state)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m move) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// letter is the FEN letter of piece, upper case for White.
func (piece Piece) letter() rune {
	r, ok := kindToLetter[piece.Kind]
	if !ok {
		return 0
	}
	if piece.Color == White {
		return unicode.ToUpper(r)
	}
	return r
}

func pieceFromLetter(r rune) (Piece, bool) {
	kind, ok := letterToKind[unicode.ToLower(r)]
	if !ok {
		return Piece{}, false
	}
	color := Black
	if unicode.IsUpper(r) {
		color = White
	}
	return Piece{Color: color, Kind: kind}, true
}

func (piece Piece) glyph() rune {
	if piece.Color == White {
		return valueToPieceWhite[piece.Kind]
	}
	return valueToPieceBlack[piece.Kind]
}

func (piece Piece) String() string {
	if piece.empty() {
		return ""
	}
	return string(piece.letter())
}

func (piece Piece) encode() uint8 {
	if piece.empty() {
		return 0
	}
	value := uint8(piece.Kind) << 1
	if piece.Color == White {
		value |= colorBit
	}
	if piece.moved {
		value |= movedBit
	}
	return value
}

func decodePiece(value uint8) Piece {
	kind := Kind((value & kindBits) >> 1)
	if kind == none {
		return Piece{}
	}
	color := Black
	if value&colorBit != 0 {
		color = White
	}
	return Piece{Color: color, Kind: kind, moved: value&movedBit != 0}
}

func (board chessState) Value() (driver.Value, error) {
	raw := make([]byte, 0, 64)
	for row := range board {
		for _, piece := range board[row] {
			raw = append(raw, piece.encode())
		}
	}
	return hex.EncodeToString(raw), nil
}

func (board *chessState) Scan(cell interface{}) error {
	var src []byte
	switch cell := cell.(type) {
	case string:
		decoded, err := hex.DecodeString(cell)
		if err != nil {
			return err
		}
		src = decoded
	case []byte:
		decoded, err := hex.DecodeString(string(cell))
		if err != nil {
			return err
		}
		src = decoded
	default:
		return fmt.Errorf("invalid format scaning %#v", cell)
	}
	if len(src) != 64 {
		return fmt.Errorf("board is not length 64: %d", len(src))
	}
	for i, value := range src {
		board[i/8][i%8] = decodePiece(value)
	}
	return nil
}

// placement is the piece placement field of FEN.
func (board chessState) placement() string {
	var builder strings.Builder
	for row := range board {
		empty := 0
		for _, piece := range board[row] {
			if piece.empty() {
				empty++
				continue
			}
			if empty > 0 {
				builder.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			builder.WriteRune(piece.letter())
		}
		if empty > 0 {
			builder.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			builder.WriteByte('/')
		}
	}
	return builder.String()
}

// parsePlacement reads a FEN placement field. Pieces off their starting
// squares are marked moved, since FEN carries no such flag.
func parsePlacement(s string) (chessState, error) {
	var board chessState
	rows := strings.Split(s, "/")
	if len(rows) != 8 {
		return chessState{}, fmt.Errorf("board is not length 8: %d", len(rows))
	}
	start := newBoard()
	for row, text := range rows {
		col := 0
		for _, r := range text {
			if unicode.IsDigit(r) {
				col += int(r - '0')
				continue
			}
			piece, ok := pieceFromLetter(r)
			if !ok || col >= 8 {
				return chessState{}, fmt.Errorf("row %d is invalid: %s", row, text)
			}
			if home := start[row][col]; home.Color != piece.Color || home.Kind != piece.Kind {
				piece.markMoved()
			}
			board[row][col] = piece
			col++
		}
		if col != 8 {
			return chessState{}, fmt.Errorf("row %d is not length 8: %d", row, col)
		}
	}
	return board, nil
}

func (board chessState) castling() string {
	rights := ""
	for _, side := range []struct {
		color   Color
		row     int
		letters string
	}{{White, 7, "KQ"}, {Black, 0, "kq"}} {
		king := board[side.row][4]
		if king.Kind != King || king.Color != side.color || king.moved {
			continue
		}
		for i, col := range []int{7, 0} {
			rook := board[side.row][col]
			if rook.Kind == Rook && rook.Color == side.color && !rook.moved {
				rights += side.letters[i : i+1]
			}
		}
	}
	if rights == "" {
		return "-"
	}
	return rights
}

// fen renders the board as FEN with no en passant target and a zero half
// move clock.
func (board chessState) fen(turn Color, moveCount int) string {
	active := "b"
	if turn == White {
		active = "w"
	}
	return fmt.Sprintf("%s %s %s - 0 %d", board.placement(), active, board.castling(), moveCount/2+1)
}

func (board chessState) String() string {
	var builder strings.Builder
	for row := range board {
		builder.WriteByte(byte('8' - row))
		builder.WriteByte(' ')
		for _, piece := range board[row] {
			if piece.empty() {
				builder.WriteRune('·')
			} else {
				builder.WriteRune(piece.glyph())
			}
		}
		builder.WriteByte('\n')
	}
	builder.WriteString("  abcdefgh")
	return builder.String()
}

func (board chessState) MarshalJSON() ([]byte, error) {
	return json.Marshal(board.placement())
}

func (board *chessState) UnmarshalJSON(bytes []byte) error {
	var state string
	if err := json.Unmarshal(bytes, &state); err != nil {
		return err
	}
	parsed, err := parsePlacement(state)
	if err != nil {
		return err
	}
	*board = parsed
	return nil
}
