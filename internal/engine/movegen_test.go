package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Scenario 2 from spec.md §8: Pawn-Knight Apex. A White Pawn on d6 and a
// White Knight on a6 (rank-mates) let the pawn borrow the Knight's L-jump
// onto e8, triggering an immediate promotion.
func TestPawnKnightApex(t *testing.T) {
	b := NewBoard()
	pawn := &Piece{Kind: Pawn, Color: White, Square: Square{File: 3, Rank: 5}}  // d6
	knight := &Piece{Kind: Knight, Color: White, Square: Square{File: 0, Rank: 5}} // a6
	whiteKing := &Piece{Kind: King, Color: White, Square: Square{File: 4, Rank: 0}}
	blackKing := &Piece{Kind: King, Color: Black, Square: Square{File: 7, Rank: 7}}
	b.place(pawn)
	b.place(knight)
	b.place(whiteKing)
	b.place(blackKing)

	dest := Square{File: 4, Rank: 7} // e8
	var apexMoves []Move
	for _, mv := range LegalMoves(b, White) {
		if mv.From == pawn.Square && mv.To == dest && mv.IsPawnKnightApex() {
			apexMoves = append(apexMoves, mv)
		}
	}
	if len(apexMoves) == 0 {
		t.Fatalf("expected a Pawn-Knight Apex move d6-e8, got none among %v", LegalMoves(b, White))
	}

	var sawQueen bool
	var queenVariant Move
	for _, mv := range apexMoves {
		if mv.BorrowedFrom.Kind != Knight {
			t.Errorf("apex move's BorrowedFrom.Kind = %v, want Knight", mv.BorrowedFrom.Kind)
		}
		if mv.Promotion != nil && *mv.Promotion == Queen {
			sawQueen = true
			queenVariant = mv
		}
	}
	if !sawQueen {
		t.Fatal("expected a Queen promotion variant among the apex moves")
	}

	queenKind := Queen
	want := Move{From: pawn.Square, To: dest, Mover: *pawn, BorrowedFrom: knight, Promotion: &queenKind}
	if diff := cmp.Diff(want, queenVariant); diff != "" {
		t.Errorf("Queen apex move mismatch (-want +got):\n%s", diff)
	}
}

// Scenario 4 from spec.md §8: stealth-capture prevention. A Black King on
// c4 may not step to b3, because White's Rook (a1) can transport there by
// borrowing the Knight's (b1) vector, even though no White piece
// natively attacks b3.
func TestStealthCapturePrevention(t *testing.T) {
	b := NewBoard()
	rook := &Piece{Kind: Rook, Color: White, Square: Square{File: 0, Rank: 0}}   // a1
	knight := &Piece{Kind: Knight, Color: White, Square: Square{File: 1, Rank: 0}} // b1
	king := &Piece{Kind: King, Color: Black, Square: Square{File: 2, Rank: 3}}   // c4
	b.place(rook)
	b.place(knight)
	b.place(king)
	b.WhiteToMove = false

	threatenedOnly := Square{File: 1, Rank: 2} // b3
	if NativeAttacks(b, threatenedOnly, White) {
		t.Fatal("b3 should not be natively attacked by White in this setup")
	}
	if !Threatens(b, threatenedOnly, White) {
		t.Fatal("b3 should be threatened via the Knight-borrowing Rook transporter move")
	}

	legal := LegalMoves(b, Black)
	for _, mv := range legal {
		if mv.To == threatenedOnly {
			t.Fatalf("King move to b3 should be illegal: %v", mv)
		}
	}

	safe := Square{File: 3, Rank: 3} // d4
	var sawSafeMove bool
	for _, mv := range legal {
		if mv.To == safe {
			sawSafeMove = true
		}
	}
	if !sawSafeMove {
		t.Fatal("King move to d4 should be legal: it is neither natively attacked nor transporter-threatened")
	}
}

// Scenario 5 from spec.md §8: Disconnection. A Rook on a3 with a Knight
// on h3 has Knight-jump transporter moves; after the Rook moves to a4 it
// shares no rank with the Knight and has none.
func TestDisconnection(t *testing.T) {
	b := NewBoard()
	rook := &Piece{Kind: Rook, Color: White, Square: Square{File: 0, Rank: 2}}   // a3
	knight := &Piece{Kind: Knight, Color: White, Square: Square{File: 7, Rank: 2}} // h3
	b.place(rook)
	b.place(knight)

	var before []Move
	for _, mv := range pseudoTransporterMoves(b, White) {
		if mv.Mover.Kind == Rook {
			before = append(before, mv)
		}
	}
	if len(before) == 0 {
		t.Fatal("expected the Rook to have Knight-jump transporter moves while sharing a rank with the Knight")
	}

	mv, err := NewMoveBuilder(rook.Square, Square{File: 0, Rank: 3}, *rook).Build() // a3-a4
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Apply(mv)

	moved := b.PieceAt(Square{File: 0, Rank: 3})
	if len(b.RankMates(moved)) != 0 {
		t.Fatal("the Rook on a4 should have no rank-mates: the Knight remains on rank 3")
	}

	var after []Move
	for _, mv := range pseudoTransporterMoves(b, White) {
		if mv.Mover.Kind == Rook {
			after = append(after, mv)
		}
	}
	if len(after) != 0 {
		t.Fatalf("expected no transporter moves for the Rook on a4, got %v", after)
	}
}

// Scenario 6 from spec.md §8: no recursive jumping. A Queen on d1 with a
// Knight on b1 and a Bishop on c1 (all rank-mates) gets transporter moves
// borrowing each mate's native vectors directly from d1 -- never a
// Knight-landing square chained into a further Bishop slide.
func TestNoRecursiveJumping(t *testing.T) {
	b := NewBoard()
	queen := &Piece{Kind: Queen, Color: White, Square: Square{File: 3, Rank: 0}}   // d1
	knight := &Piece{Kind: Knight, Color: White, Square: Square{File: 1, Rank: 0}} // b1
	bishop := &Piece{Kind: Bishop, Color: White, Square: Square{File: 2, Rank: 0}} // c1
	b.place(queen)
	b.place(knight)
	b.place(bishop)

	knightDests := map[Square]bool{
		{File: 5, Rank: 1}: true, // f2
		{File: 1, Rank: 1}: true, // b2
		{File: 4, Rank: 2}: true, // e3
		{File: 2, Rank: 2}: true, // c3
	}
	bishopDests := map[Square]bool{
		{File: 4, Rank: 1}: true, // e2
		{File: 5, Rank: 2}: true, // f3
		{File: 6, Rank: 3}: true, // g4
		{File: 7, Rank: 4}: true, // h5
		{File: 2, Rank: 1}: true, // c2
		{File: 1, Rank: 2}: true, // b3
		{File: 0, Rank: 3}: true, // a4
	}

	var queenMoves []Move
	for _, mv := range pseudoTransporterMoves(b, White) {
		if mv.Mover.Square == queen.Square {
			queenMoves = append(queenMoves, mv)
		}
	}

	want := len(knightDests) + len(bishopDests)
	if len(queenMoves) != want {
		t.Fatalf("len(queenMoves) = %d, want %d", len(queenMoves), want)
	}

	for _, mv := range queenMoves {
		switch mv.BorrowedFrom.Kind {
		case Knight:
			if !knightDests[mv.To] {
				t.Errorf("unexpected Knight-borrowed destination %v", mv.To)
			}
		case Bishop:
			if !bishopDests[mv.To] {
				t.Errorf("unexpected Bishop-borrowed destination %v", mv.To)
			}
		default:
			t.Errorf("unexpected borrowed kind %v: no other rank-mate should contribute a vector", mv.BorrowedFrom.Kind)
		}
	}
}

// Boundary behavior from spec.md §8: a sliding transporter move through
// an occupied intermediate square is rejected regardless of the
// occupant's color.
func TestSlidingTransporterBlockedByIntermediateSquare(t *testing.T) {
	run := func(t *testing.T, blockerColor Color) {
		b := NewBoard()
		queen := &Piece{Kind: Queen, Color: White, Square: Square{File: 3, Rank: 0}}   // d1
		bishop := &Piece{Kind: Bishop, Color: White, Square: Square{File: 2, Rank: 0}} // c1
		blocker := &Piece{Kind: Pawn, Color: blockerColor, Square: Square{File: 4, Rank: 1}} // e2
		b.place(queen)
		b.place(bishop)
		b.place(blocker)

		var along []Move
		for _, mv := range pseudoTransporterMoves(b, White) {
			if mv.Mover.Square == queen.Square && mv.BorrowedFrom.Kind == Bishop {
				dx := mv.To.File - queen.Square.File
				dy := mv.To.Rank - queen.Square.Rank
				if dx == dy && dx > 0 {
					along = append(along, mv)
				}
			}
		}

		if blockerColor == White {
			if len(along) != 0 {
				t.Fatalf("a friendly blocker should exclude the entire vector, got %v", along)
			}
		} else {
			if len(along) != 1 || along[0].To != blocker.Square {
				t.Fatalf("an enemy blocker should yield exactly one capture on the blocker's square, got %v", along)
			}
		}
	}

	t.Run("friendly blocker", func(t *testing.T) { run(t, White) })
	t.Run("enemy blocker", func(t *testing.T) { run(t, Black) })
}

// Boundary behavior from spec.md §8: castling through a square threatened
// only by a transporter move is forbidden.
func TestCastlingThroughTransporterThreatIsForbidden(t *testing.T) {
	b := NewBoard()
	king := &Piece{Kind: King, Color: White, Square: Square{File: 4, Rank: 0}} // e1
	rook := &Piece{Kind: Rook, Color: White, Square: Square{File: 7, Rank: 0}} // h1
	enemyRook := &Piece{Kind: Rook, Color: Black, Square: Square{File: 6, Rank: 2}}   // g3
	enemyKnight := &Piece{Kind: Knight, Color: Black, Square: Square{File: 0, Rank: 2}} // a3
	b.place(king)
	b.place(rook)
	b.place(enemyRook)
	b.place(enemyKnight)
	b.Castle = CastleRights{WK: true}

	if NativeAttacks(b, Square{File: 5, Rank: 0}, Black) {
		t.Fatal("f1 should not be natively attacked by Black in this setup")
	}
	if !Threatens(b, Square{File: 5, Rank: 0}, Black) {
		t.Fatal("f1 should be threatened via the Knight-borrowing Rook transporter move")
	}

	for _, mv := range generateCastlingMoves(b, White) {
		if mv.To.File == 6 {
			t.Fatalf("kingside castling should be forbidden: f1 is threatened only by a transporter move, got %v", mv)
		}
	}
}
