package main

// chessState is the 8x8 grid indexed [row][col]; row 0 is Black's back rank.
type chessState [8][8]Piece

func newBoard() chessState {
	var board chessState
	for col, kind := range backRank {
		board[0][col] = Piece{Color: Black, Kind: kind}
		board[1][col] = Piece{Color: Black, Kind: Pawn}
		board[6][col] = Piece{Color: White, Kind: Pawn}
		board[7][col] = Piece{Color: White, Kind: kind}
	}
	return board
}

// occupant returns the piece on square, or false when the square is empty
// or off the board.
func (board chessState) occupant(square Square) (Piece, bool) {
	if !square.valid() {
		return Piece{}, false
	}
	piece := board[square.Row][square.Col]
	return piece, !piece.empty()
}

// legalMove reports whether mover may play from to to. It does not look at
// whether the mover's king is left in check.
func (board chessState) legalMove(from, to Square, mover Color) bool {
	if !from.valid() || !to.valid() {
		return false
	}
	piece, ok := board.occupant(from)
	if !ok || piece.Color != mover {
		return false
	}
	return piece.validMove(board, from, to)
}

// applyMove relocates the piece on from to to, moving the rook first when
// the piece is an unmoved king shifting two columns. Whatever stood on to is
// overwritten. Callers must check legalMove first.
func (board *chessState) applyMove(from, to Square) {
	if !from.valid() || !to.valid() {
		return
	}
	piece := board[from.Row][from.Col]
	if piece.Kind == King && !piece.moved {
		if colShift := to.Col - from.Col; abs(colShift) == 2 {
			rookFrom := castleRookSquare(from, colShift)
			rookTo := Square{Row: from.Row, Col: to.Col - sign(colShift)}
			rook := board[rookFrom.Row][rookFrom.Col]
			board[rookTo.Row][rookTo.Col] = rook
			board[rookFrom.Row][rookFrom.Col] = Piece{}
			if !rook.empty() {
				board[rookTo.Row][rookTo.Col].markMoved()
			}
		}
	}
	board[to.Row][to.Col] = piece
	board[from.Row][from.Col] = Piece{}
	if !piece.empty() {
		board[to.Row][to.Col].markMoved()
	}
}

// underAttack reports whether any piece of attacker could move onto square
// under the ordinary movement rules.
func (board chessState) underAttack(square Square, attacker Color) bool {
	if !square.valid() {
		return false
	}
	for row := range board {
		for col, piece := range board[row] {
			if piece.empty() || piece.Color != attacker {
				continue
			}
			if piece.validMove(board, Square{Row: row, Col: col}, square) {
				return true
			}
		}
	}
	return false
}

// clearPath walks unit steps from from toward to and reports whether every
// square strictly between them is empty. from and to must share a row,
// column or diagonal.
func (board chessState) clearPath(from, to Square) bool {
	rowStep := sign(to.Row - from.Row)
	colStep := sign(to.Col - from.Col)
	row, col := from.Row+rowStep, from.Col+colStep
	for row != to.Row || col != to.Col {
		if _, ok := board.occupant(Square{Row: row, Col: col}); ok {
			return false
		}
		row, col = row+rowStep, col+colStep
	}
	return true
}

// movesForBoard lists every legal move for color in row-major order of
// origin then destination.
func (board chessState) movesForBoard(color Color) []move {
	moves := make([]move, 0, 32)
	for _, depart := range allSquares() {
		piece, ok := board.occupant(depart)
		if !ok || piece.Color != color {
			continue
		}
		for _, dest := range allSquares() {
			if board.legalMove(depart, dest, color) {
				moves = append(moves, move{depart: depart, dest: dest})
			}
		}
	}
	return moves
}
