package engine

// Piece is a single board occupant: its kind, color, current square, and
// whether it has ever moved. Invariant: Square always equals the board
// cell that holds this piece; the board and the piece never disagree.
type Piece struct {
	Kind     PieceKind
	Color    Color
	Square   Square
	HasMoved bool
}

// CastleRights tracks the four independent castling entitlements.
type CastleRights struct {
	WK, WQ, BK, BQ bool
}

// Board is the 8x8 occupancy grid plus the ancillary state (side to
// move, castling rights, en-passant target, move history) spec.md §3
// requires. Board does not decide legality; it performs the requested
// mutation and nothing more.
type Board struct {
	grid            [8][8]*Piece // grid[rank][file]
	WhiteToMove     bool
	Castle          CastleRights
	EnPassantTarget *Square
	History         []Move
}

// NewBoard returns an empty board with White to move and no castling
// rights, matching the variant's data model before setup.
func NewBoard() *Board {
	return &Board{WhiteToMove: true}
}

// homeRank returns the back rank for color: 0 for White, 7 for Black.
func homeRank(color Color) int {
	if color == White {
		return 0
	}
	return 7
}

// SetupStandard resets the board to the standard chess starting array
// and clears all flags.
func (b *Board) SetupStandard() {
	b.grid = [8][8]*Piece{}
	b.WhiteToMove = true
	b.Castle = CastleRights{WK: true, WQ: true, BK: true, BQ: true}
	b.EnPassantTarget = nil
	b.History = nil

	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range backRank {
		b.place(&Piece{Kind: kind, Color: White, Square: Square{File: file, Rank: 0}})
		b.place(&Piece{Kind: kind, Color: Black, Square: Square{File: file, Rank: 7}})
	}
	for file := 0; file < 8; file++ {
		b.place(&Piece{Kind: Pawn, Color: White, Square: Square{File: file, Rank: 1}})
		b.place(&Piece{Kind: Pawn, Color: Black, Square: Square{File: file, Rank: 6}})
	}
}

func (b *Board) place(p *Piece) {
	b.grid[p.Square.Rank][p.Square.File] = p
}

// PieceAt returns the piece occupying sq, or nil if sq is empty or
// off-board.
func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	return b.grid[sq.Rank][sq.File]
}

// IsEmpty reports whether sq holds no piece. Off-board squares are
// reported as not empty so sliding-path checks never walk off the grid.
func (b *Board) IsEmpty(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	return b.grid[sq.Rank][sq.File] == nil
}

// KingSquare returns the square of color's king. Recomputed on every
// call by scanning the grid; the board caches nothing about piece
// identity between turns (spec.md's Disconnection principle applies to
// rank-mates, and the same "no hidden memory" posture is used here).
func (b *Board) KingSquare(color Color) Square {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.grid[rank][file]
			if p != nil && p.Kind == King && p.Color == color {
				return Square{File: file, Rank: rank}
			}
		}
	}
	return NoSquare
}

// PiecesOfColor returns every piece currently belonging to color.
func (b *Board) PiecesOfColor(color Color) []*Piece {
	var pieces []*Piece
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.grid[rank][file]
			if p != nil && p.Color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// RankMates returns the friendly pieces sharing of's rank, excluding of
// itself. Recomputed from the current position every call, so a piece
// that changes rank forgets its former rank-mates by construction
// (spec.md's Disconnection law).
func (b *Board) RankMates(of *Piece) []*Piece {
	var mates []*Piece
	for file := 0; file < 8; file++ {
		p := b.grid[of.Square.Rank][file]
		if p != nil && p != of && p.Color == of.Color {
			mates = append(mates, p)
		}
	}
	return mates
}

// Clone returns a deep copy of the board: independent pieces, history,
// and ancillary state. Used by the move generator's clone-and-discard
// legality filter (spec.md §9).
func (b *Board) Clone() *Board {
	out := &Board{
		WhiteToMove: b.WhiteToMove,
		Castle:      b.Castle,
		History:     append([]Move(nil), b.History...),
	}
	if b.EnPassantTarget != nil {
		ep := *b.EnPassantTarget
		out.EnPassantTarget = &ep
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b.grid[rank][file]; p != nil {
				cp := *p
				out.grid[rank][file] = &cp
			}
		}
	}
	return out
}

// Apply mutates the board to reflect m, per spec.md §4.G. It does not
// check legality; callers (the move generator and Engine.Apply) are
// responsible for only ever applying moves they have already vetted.
func (b *Board) Apply(m Move) {
	mover := b.PieceAt(m.From)
	if mover == nil {
		panic(newInvariantViolation("Apply: no piece at move's From square"))
	}

	// 1. Clear en-passant target, then re-set it if this is a double push.
	b.EnPassantTarget = nil
	if mover.Kind == Pawn {
		if delta := m.To.Rank - m.From.Rank; m.To.File == m.From.File && (delta == 2 || delta == -2) {
			transit := Square{File: m.From.File, Rank: (m.From.Rank + m.To.Rank) / 2}
			b.EnPassantTarget = &transit
		}
	}

	// 2. En passant: remove the captured pawn from beside the mover's origin rank.
	if m.IsEnPassant {
		capturedSq := Square{File: m.To.File, Rank: m.From.Rank}
		b.grid[capturedSq.Rank][capturedSq.File] = nil
	}

	// 3. Castling: relocate the rook.
	if m.IsCastling {
		rank := m.From.Rank
		if m.To.File == 6 { // kingside
			rook := b.grid[rank][7]
			b.grid[rank][7] = nil
			rook.Square = Square{File: 5, Rank: rank}
			rook.HasMoved = true
			b.grid[rank][5] = rook
		} else { // queenside
			rook := b.grid[rank][0]
			b.grid[rank][0] = nil
			rook.Square = Square{File: 3, Rank: rank}
			rook.HasMoved = true
			b.grid[rank][3] = rook
		}
	}

	// 4. Move the piece (or its promotion) from From to To.
	b.grid[m.From.Rank][m.From.File] = nil
	if m.Promotion != nil {
		promoted := &Piece{Kind: *m.Promotion, Color: mover.Color, Square: m.To, HasMoved: true}
		b.grid[m.To.Rank][m.To.File] = promoted
	} else {
		mover.Square = m.To
		mover.HasMoved = true
		b.grid[m.To.Rank][m.To.File] = mover
	}

	// 5. Update castle rights.
	b.updateCastleRights(mover, m)

	// 6. Append to history and toggle side to move.
	b.History = append(b.History, m)
	b.WhiteToMove = !b.WhiteToMove
}

func (b *Board) updateCastleRights(mover *Piece, m Move) {
	if mover.Kind == King {
		if mover.Color == White {
			b.Castle.WK, b.Castle.WQ = false, false
		} else {
			b.Castle.BK, b.Castle.BQ = false, false
		}
	}
	if mover.Kind == Rook {
		b.clearRightForRookSquare(mover.Color, m.From)
	}
	// m.Captured is a snapshot taken at move-construction time (see
	// MoveBuilder.Captured), so Kind/Color here read the piece as it
	// stood at capture, which is also its Kind/Color forever after.
	if m.Captured != nil && m.Captured.Kind == Rook {
		b.clearRightForRookSquare(m.Captured.Color, m.To)
	}
}

func (b *Board) clearRightForRookSquare(color Color, sq Square) {
	if sq.Rank != homeRank(color) {
		return
	}
	switch sq.File {
	case 0:
		if color == White {
			b.Castle.WQ = false
		} else {
			b.Castle.BQ = false
		}
	case 7:
		if color == White {
			b.Castle.WK = false
		} else {
			b.Castle.BK = false
		}
	}
}

// ToMoveColor returns the color whose turn it currently is.
func (b *Board) ToMoveColor() Color {
	if b.WhiteToMove {
		return White
	}
	return Black
}

// PieceView is a display-oriented, non-mutating snapshot of one
// occupied square.
type PieceView struct {
	Kind     PieceKind
	Color    Color
	Square   Square
	HasMoved bool
}

// BoardSnapshot is a grid snapshot for display and persistence. It
// shares no memory with the live Board and is safe to retain or
// serialize.
type BoardSnapshot struct {
	Grid            [8][8]*PieceView
	WhiteToMove     bool
	Castle          CastleRights
	EnPassantTarget *Square
}

// Snapshot copies the board into a display-safe value.
func (b *Board) Snapshot() BoardSnapshot {
	snap := BoardSnapshot{WhiteToMove: b.WhiteToMove, Castle: b.Castle}
	if b.EnPassantTarget != nil {
		ep := *b.EnPassantTarget
		snap.EnPassantTarget = &ep
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b.grid[rank][file]; p != nil {
				snap.Grid[rank][file] = &PieceView{Kind: p.Kind, Color: p.Color, Square: p.Square, HasMoved: p.HasMoved}
			}
		}
	}
	return snap
}
