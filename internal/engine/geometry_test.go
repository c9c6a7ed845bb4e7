package engine

import "testing"

func TestSquareIsValid(t *testing.T) {
	cases := []struct {
		sq    Square
		valid bool
	}{
		{Square{0, 0}, true},
		{Square{7, 7}, true},
		{Square{-1, 0}, false},
		{Square{0, 8}, false},
		{NoSquare, false},
	}
	for _, c := range cases {
		if got := c.sq.IsValid(); got != c.valid {
			t.Errorf("Square%+v.IsValid() = %v, want %v", c.sq, got, c.valid)
		}
	}
}

func TestSquareOffsetAndString(t *testing.T) {
	sq := Square{File: 4, Rank: 3} // e4
	if got, want := sq.String(), "e4"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	off := sq.Offset(1, 1) // f5
	if got, want := off.String(), "f5"; got != want {
		t.Fatalf("Offset String() = %q, want %q", got, want)
	}
}

func TestParseSquareRoundTrip(t *testing.T) {
	for _, text := range []string{"a1", "h8", "e4", "d6"} {
		sq, err := ParseSquare(text)
		if err != nil {
			t.Fatalf("ParseSquare(%q) error: %v", text, err)
		}
		if got := sq.String(); got != text {
			t.Errorf("round trip %q -> %q", text, got)
		}
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, text := range []string{"", "a", "z9", "i1", "a0"} {
		if _, err := ParseSquare(text); err == nil {
			t.Errorf("ParseSquare(%q) expected error, got none", text)
		}
	}
}

func TestIsPromotionRank(t *testing.T) {
	if !IsPromotionRank(White, 7) {
		t.Error("rank 7 should be White's promotion rank")
	}
	if IsPromotionRank(White, 0) {
		t.Error("rank 0 should not be White's promotion rank")
	}
	if !IsPromotionRank(Black, 0) {
		t.Error("rank 0 should be Black's promotion rank")
	}
}

func TestPawnDirectionAndStartRank(t *testing.T) {
	if PawnDirection(White) != 1 {
		t.Error("White pawns advance toward increasing rank")
	}
	if PawnDirection(Black) != -1 {
		t.Error("Black pawns advance toward decreasing rank")
	}
	if PawnStartRank(White) != 1 || PawnStartRank(Black) != 6 {
		t.Error("unexpected pawn start ranks")
	}
}

func TestColorOpposite(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite should swap White and Black")
	}
}
