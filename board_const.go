package main

const (
	none Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

const (
	Black Color = iota
	White
)

const (
	colorBit uint8 = 0x01
	kindBits uint8 = 0x0E
	movedBit uint8 = 0x10
)

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

var kindToLetter = map[Kind]rune{
	Bishop: 'b',
	King:   'k',
	Knight: 'n',
	Pawn:   'p',
	Queen:  'q',
	Rook:   'r',
}

var letterToKind = map[rune]Kind{
	'b': Bishop,
	'k': King,
	'n': Knight,
	'p': Pawn,
	'q': Queen,
	'r': Rook,
}

var kindToName = map[Kind]string{
	Bishop: "bishop",
	King:   "king",
	Knight: "knight",
	Pawn:   "pawn",
	Queen:  "queen",
	Rook:   "rook",
}

var valueToPieceBlack = map[Kind]rune{
	Bishop: '♝',
	King:   '♚',
	Knight: '♞',
	Pawn:   '♟',
	Queen:  '♛',
	Rook:   '♜',
}

var valueToPieceWhite = map[Kind]rune{
	Bishop: '♗',
	King:   '♔',
	Knight: '♘',
	Pawn:   '♙',
	Queen:  '♕',
	Rook:   '♖',
}

var captureValue = map[Kind]int{
	Bishop: 3,
	King:   100,
	Knight: 3,
	Pawn:   1,
	Queen:  9,
	Rook:   5,
}

var defaultSuggestion = map[Color]string{
	Black: "e7e5",
	White: "e2e4",
}
