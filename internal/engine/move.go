package engine

import "strings"

// Move is an immutable description of one move: its endpoints, the
// piece that moved (as it stood before the move), any captured piece,
// the rank-mate it borrowed movement from (if any), a promotion kind,
// and the castling/en-passant flags. Mover, Captured, and BorrowedFrom
// are value snapshots rather than live board references, per spec.md
// §3's ownership note for value-type boards.
type Move struct {
	From, To     Square
	Mover        Piece
	Captured     *Piece
	BorrowedFrom *Piece
	Promotion    *PieceKind
	IsCastling   bool
	IsEnPassant  bool
}

// IsTransporter reports whether the move borrows a rank-mate's movement.
func (m Move) IsTransporter() bool {
	return m.BorrowedFrom != nil
}

// IsPawnKnightApex reports whether this move is a Pawn borrowing a
// Knight's L-jump onto its own far rank, triggering an immediate
// promotion.
func (m Move) IsPawnKnightApex() bool {
	return m.Mover.Kind == Pawn &&
		m.IsTransporter() &&
		m.BorrowedFrom.Kind == Knight &&
		m.Promotion != nil
}

// MoveBuilder is the sole constructor path for Move; Build enforces the
// invariants spec.md §3 lists so malformed moves cannot be fabricated
// elsewhere in the engine.
type MoveBuilder struct {
	m   Move
	err error
}

// NewMoveBuilder starts building a move of mover from `from` to `to`.
func NewMoveBuilder(from, to Square, mover Piece) *MoveBuilder {
	return &MoveBuilder{m: Move{From: from, To: to, Mover: mover}}
}

// Captured records the piece standing on the destination, if any. The
// piece is copied so the Move keeps a snapshot of it as it stood at
// capture time, not a live alias into the board's grid.
func (b *MoveBuilder) Captured(p *Piece) *MoveBuilder {
	b.m.Captured = clonePiece(p)
	return b
}

// BorrowedFrom marks this as a transporter move borrowing from's native
// vector table. The piece is copied so the Move keeps a snapshot of the
// lender as it stood at transport time, not a live alias into the
// board's grid -- the lender may move again on a later ply.
func (b *MoveBuilder) BorrowedFrom(p *Piece) *MoveBuilder {
	b.m.BorrowedFrom = clonePiece(p)
	return b
}

// clonePiece copies p so a Move can hold a stable snapshot of a board
// piece instead of a pointer the board keeps mutating in place.
func clonePiece(p *Piece) *Piece {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Promotion records the chosen promotion kind.
func (b *MoveBuilder) Promotion(k PieceKind) *MoveBuilder {
	kk := k
	b.m.Promotion = &kk
	return b
}

// Castling marks this as a castling move.
func (b *MoveBuilder) Castling() *MoveBuilder {
	b.m.IsCastling = true
	return b
}

// EnPassant marks this as an en passant capture.
func (b *MoveBuilder) EnPassant() *MoveBuilder {
	b.m.IsEnPassant = true
	return b
}

// Build validates the accumulated fields against spec.md §3's
// construction invariants and returns the finished Move.
func (b *MoveBuilder) Build() (Move, error) {
	m := b.m

	if m.IsCastling {
		if m.Mover.Kind != King {
			return Move{}, newInvariantViolation("castling move's mover is not a King")
		}
		diff := m.To.File - m.From.File
		if diff != 2 && diff != -2 {
			return Move{}, newInvariantViolation("castling move is not a 2-file step")
		}
		if m.To.File != 6 && m.To.File != 2 {
			return Move{}, newInvariantViolation("castling move's destination is not a castling file")
		}
	}

	if m.IsEnPassant {
		if m.Mover.Kind != Pawn {
			return Move{}, newInvariantViolation("en passant move's mover is not a Pawn")
		}
		if m.Captured == nil {
			return Move{}, newInvariantViolation("en passant move has no captured pawn")
		}
		if m.Captured.Square.Rank != m.From.Rank || m.Captured.Square.File != m.To.File {
			return Move{}, newInvariantViolation("en passant move's captured pawn is not adjacent on the origin rank")
		}
	}

	if m.IsTransporter() && (m.IsCastling || m.IsEnPassant) {
		return Move{}, newInvariantViolation("transporter move cannot also be castling or en passant")
	}

	wantsPromotion := m.Mover.Kind == Pawn && IsPromotionRank(m.Mover.Color, m.To.Rank)
	if wantsPromotion && m.Promotion == nil {
		return Move{}, newInvariantViolation("pawn move onto the far rank has no promotion kind")
	}
	if !wantsPromotion && m.Promotion != nil {
		return Move{}, newInvariantViolation("promotion kind set on a move that does not land on the far rank")
	}

	return m, nil
}

// String renders the move in the engine's log notation. This is for
// logs and tests; it is not a parser input (spec.md §4.C).
func (m Move) String() string {
	if m.IsCastling {
		if m.To.File == 6 {
			return "O-O"
		}
		return "O-O-O"
	}

	var sb strings.Builder
	sb.WriteString(m.Mover.Kind.Symbol())
	if m.IsTransporter() {
		sb.WriteString("~")
		sb.WriteString(m.BorrowedFrom.Kind.Symbol())
	}
	sb.WriteString(" ")
	sb.WriteString(m.From.String())
	if m.Captured != nil {
		sb.WriteString("x")
	} else {
		sb.WriteString("-")
	}
	sb.WriteString(m.To.String())
	if m.Promotion != nil {
		sb.WriteString("=")
		sb.WriteString(m.Promotion.Symbol())
		if m.IsPawnKnightApex() {
			sb.WriteString("!")
		}
	}
	return sb.String()
}
