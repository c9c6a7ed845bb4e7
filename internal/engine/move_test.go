package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMoveBuilderRequiresPromotionOnFarRank(t *testing.T) {
	pawn := Piece{Kind: Pawn, Color: White, Square: Square{File: 0, Rank: 6}}
	_, err := NewMoveBuilder(pawn.Square, Square{File: 0, Rank: 7}, pawn).Build()
	if err == nil {
		t.Fatal("expected error building a pawn move onto the far rank without a promotion kind")
	}
}

func TestMoveBuilderRejectsPromotionOffFarRank(t *testing.T) {
	pawn := Piece{Kind: Pawn, Color: White, Square: Square{File: 0, Rank: 3}}
	_, err := NewMoveBuilder(pawn.Square, Square{File: 0, Rank: 4}, pawn).Promotion(Queen).Build()
	if err == nil {
		t.Fatal("expected error attaching a promotion to a move that does not land on the far rank")
	}
}

func TestMoveBuilderCastlingRequiresKing(t *testing.T) {
	rook := Piece{Kind: Rook, Color: White, Square: Square{File: 0, Rank: 0}}
	_, err := NewMoveBuilder(rook.Square, Square{File: 2, Rank: 0}, rook).Castling().Build()
	if err == nil {
		t.Fatal("expected error building a castling move whose mover is not a King")
	}
}

func TestMoveBuilderTransporterCannotAlsoCastle(t *testing.T) {
	king := Piece{Kind: King, Color: White, Square: Square{File: 4, Rank: 0}}
	rook := Piece{Kind: Rook, Color: White, Square: Square{File: 0, Rank: 0}}
	_, err := NewMoveBuilder(king.Square, Square{File: 6, Rank: 0}, king).
		Castling().BorrowedFrom(&rook).Build()
	if err == nil {
		t.Fatal("expected error building a move that is both castling and transporter")
	}
}

func TestMoveIsTransporterAndApex(t *testing.T) {
	knight := Piece{Kind: Knight, Color: White, Square: Square{File: 0, Rank: 0}}
	pawn := Piece{Kind: Pawn, Color: White, Square: Square{File: 3, Rank: 5}}
	queenKind := Queen

	mv, err := NewMoveBuilder(pawn.Square, Square{File: 4, Rank: 7}, pawn).
		BorrowedFrom(&knight).Promotion(queenKind).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mv.IsTransporter() {
		t.Error("expected IsTransporter() to be true")
	}
	if !mv.IsPawnKnightApex() {
		t.Error("expected IsPawnKnightApex() to be true for a pawn borrowing a knight's jump onto the far rank")
	}
}

func TestMoveBuilderProducesExpectedTransporterMove(t *testing.T) {
	knight := Piece{Kind: Knight, Color: White, Square: Square{File: 0, Rank: 0}}
	pawn := Piece{Kind: Pawn, Color: White, Square: Square{File: 3, Rank: 5}}
	queenKind := Queen

	got, err := NewMoveBuilder(pawn.Square, Square{File: 4, Rank: 7}, pawn).
		BorrowedFrom(&knight).Promotion(queenKind).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Move{
		From:         pawn.Square,
		To:           Square{File: 4, Rank: 7},
		Mover:        pawn,
		BorrowedFrom: &knight,
		Promotion:    &queenKind,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveStringCastling(t *testing.T) {
	king := Piece{Kind: King, Color: White, Square: Square{File: 4, Rank: 0}}
	mv, err := NewMoveBuilder(king.Square, Square{File: 6, Rank: 0}, king).Castling().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := mv.String(), "O-O"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
