// Package render draws a board snapshot as SVG, grounded on
// 0x5844-chess's dependency on github.com/ajstarks/svgo (that repo
// pulls svgo into its go.mod without a consuming bitboard-to-pixels
// adapter; this package is that adapter, generalized to the variant's
// BoardSnapshot DTO). It has no knowledge of move legality: it draws
// whatever engine.BoardSnapshot it is given.
package render

import (
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/tether-chess/tether-chess/internal/engine"
)

const squareSize = 60
const boardPixels = squareSize * 8

var lightFill = "#eeeed2"
var darkFill = "#769656"
var highlightFill = "#f6f669"

// glyphs maps (color, kind) to the Unicode chess glyph drawn on a square.
var glyphs = map[engine.Color]map[engine.PieceKind]string{
	engine.White: {
		engine.King:   "♔",
		engine.Queen:  "♕",
		engine.Rook:   "♖",
		engine.Bishop: "♗",
		engine.Knight: "♘",
		engine.Pawn:   "♙",
	},
	engine.Black: {
		engine.King:   "♚",
		engine.Queen:  "♛",
		engine.Rook:   "♜",
		engine.Bishop: "♝",
		engine.Knight: "♞",
		engine.Pawn:   "♟",
	},
}

// Board renders snap as an SVG document: an 8x8 grid with algebraic
// rank/file labels, piece glyphs, and highlight's squares filled with
// the highlight color.
func Board(snap engine.BoardSnapshot, highlight []engine.Square) string {
	var sb strings.Builder
	canvas := svg.New(&sb)
	canvas.Start(boardPixels+squareSize/2, boardPixels+squareSize/2)

	highlighted := make(map[engine.Square]bool, len(highlight))
	for _, sq := range highlight {
		highlighted[sq] = true
	}

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			x := file * squareSize
			y := (7 - rank) * squareSize

			fill := lightFill
			if (rank+file)%2 == 0 {
				fill = darkFill
			}
			sq := engine.Square{File: file, Rank: rank}
			if highlighted[sq] {
				fill = highlightFill
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)

			if p := snap.Grid[rank][file]; p != nil {
				glyph := glyphs[p.Color][p.Kind]
				canvas.Text(x+squareSize/2, y+squareSize/2+squareSize/6, glyph,
					"text-anchor:middle;font-size:"+strconv.Itoa(squareSize-10)+"px")
			}
		}
	}

	for file := 0; file < 8; file++ {
		label := string(rune('a' + file))
		canvas.Text(file*squareSize+squareSize/2, boardPixels+squareSize/3, label,
			"text-anchor:middle;font-size:14px")
	}
	for rank := 0; rank < 8; rank++ {
		label := strconv.Itoa(rank + 1)
		canvas.Text(boardPixels+squareSize/4, (7-rank)*squareSize+squareSize/2, label,
			"text-anchor:middle;font-size:14px")
	}

	canvas.End()
	return sb.String()
}
