package engine

// walkVectors returns every destination square reachable from origin by
// walking vectors, honoring path integrity: a step onto an empty square
// continues (if sliding) or stops (if not); a step onto an enemy piece
// is included as a capture and then stops; a step onto a friendly piece
// stops without being included. The same walker serves both native
// sliding/stepping generation and transporter generation -- the only
// difference between "P moves itself" and "P borrows M's vectors" is
// which vector table the caller passes in (spec.md §4.F).
func walkVectors(b *Board, origin Square, color Color, vectors []Vector) []Square {
	var dests []Square
	for _, v := range vectors {
		cur := origin
		for {
			cur = cur.Offset(v.DX, v.DY)
			if !cur.IsValid() {
				break
			}
			occ := b.PieceAt(cur)
			if occ == nil {
				dests = append(dests, cur)
			} else if occ.Color != color {
				dests = append(dests, cur)
				break
			} else {
				break
			}
			if !v.Sliding {
				break
			}
		}
	}
	return dests
}

// pseudoNativeMoves generates every pseudo-legal native move for color:
// standard pawn pushes/double-push/captures/en passant, and vector-table
// moves for every other kind. Castling is generated separately by
// generateCastlingMoves because its legality depends on Threatens
// (built from NativeAttacks and pseudoTransporterMoves); keeping it out
// of the pseudo-legal generators avoids the self-reference spec.md §4.E
// warns against.
func pseudoNativeMoves(b *Board, color Color) []Move {
	var moves []Move
	for _, p := range b.PiecesOfColor(color) {
		if p.Kind == Pawn {
			moves = append(moves, pawnNativeMoves(b, p)...)
			continue
		}
		for _, dest := range walkVectors(b, p.Square, p.Color, NativeVectors(p.Kind, p.Color)) {
			mv, err := NewMoveBuilder(p.Square, dest, *p).Captured(b.PieceAt(dest)).Build()
			if err == nil {
				moves = append(moves, mv)
			}
		}
	}
	return moves
}

func pawnNativeMoves(b *Board, p *Piece) []Move {
	var moves []Move
	dir := PawnDirection(p.Color)
	origin := p.Square

	one := origin.Offset(0, dir)
	if one.IsValid() && b.IsEmpty(one) {
		moves = append(moves, buildPawnMoves(p, one, nil)...)
		if p.Square.Rank == PawnStartRank(p.Color) {
			two := origin.Offset(0, 2*dir)
			if two.IsValid() && b.IsEmpty(two) {
				moves = append(moves, buildPawnMoves(p, two, nil)...)
			}
		}
	}

	for _, dx := range [2]int{-1, 1} {
		dest := origin.Offset(dx, dir)
		if !dest.IsValid() {
			continue
		}
		if occ := b.PieceAt(dest); occ != nil && occ.Color != p.Color {
			moves = append(moves, buildPawnMoves(p, dest, occ)...)
			continue
		}
		if b.EnPassantTarget != nil && *b.EnPassantTarget == dest {
			capturedSq := Square{File: dest.File, Rank: origin.Rank}
			captured := b.PieceAt(capturedSq)
			if captured != nil && captured.Kind == Pawn && captured.Color != p.Color {
				mv, err := NewMoveBuilder(origin, dest, *p).Captured(captured).EnPassant().Build()
				if err == nil {
					moves = append(moves, mv)
				}
			}
		}
	}
	return moves
}

// buildPawnMoves returns one move for a non-promoting pawn step, or one
// move per promotion kind when dest lies on the pawn's far rank.
func buildPawnMoves(p *Piece, dest Square, captured *Piece) []Move {
	if !IsPromotionRank(p.Color, dest.Rank) {
		mv, err := NewMoveBuilder(p.Square, dest, *p).Captured(captured).Build()
		if err != nil {
			return nil
		}
		return []Move{mv}
	}
	var moves []Move
	for _, kind := range PromotionKinds {
		mv, err := NewMoveBuilder(p.Square, dest, *p).Captured(captured).Promotion(kind).Build()
		if err == nil {
			moves = append(moves, mv)
		}
	}
	return moves
}

// pseudoTransporterMoves generates every pseudo-legal transporter move
// for color: for each friendly piece P and each rank-mate M, walk M's
// native vectors from P's own square (path integrity is checked from
// the mover, not the lender -- spec.md's resolved Open Question). No
// recursive jumping is possible by construction: the inner loop only
// ever reads a rank-mate's native vector table, never another
// transporter move's borrowed vectors.
func pseudoTransporterMoves(b *Board, color Color) []Move {
	var moves []Move
	for _, p := range b.PiecesOfColor(color) {
		for _, mate := range b.RankMates(p) {
			vectors := NativeVectors(mate.Kind, mate.Color)
			for _, dest := range walkVectors(b, p.Square, p.Color, vectors) {
				captured := b.PieceAt(dest)
				if p.Kind == Pawn && IsPromotionRank(p.Color, dest.Rank) {
					for _, kind := range PromotionKinds {
						mv, err := NewMoveBuilder(p.Square, dest, *p).
							Captured(captured).BorrowedFrom(mate).Promotion(kind).Build()
						if err == nil {
							moves = append(moves, mv)
						}
					}
					continue
				}
				mv, err := NewMoveBuilder(p.Square, dest, *p).
					Captured(captured).BorrowedFrom(mate).Build()
				if err == nil {
					moves = append(moves, mv)
				}
			}
		}
	}
	return moves
}

// generateCastlingMoves emits castling moves for color when the king
// and the relevant rook have not moved, the intervening squares are
// empty, and none of the king's current square, transit square, or
// destination is under full threat (native or transporter) from the
// opponent (spec.md §4.F step 1).
func generateCastlingMoves(b *Board, color Color) []Move {
	var moves []Move
	kingSq := b.KingSquare(color)
	if kingSq == NoSquare {
		return moves
	}
	king := b.PieceAt(kingSq)
	if king == nil || king.HasMoved {
		return moves
	}
	rank := kingSq.Rank
	opponent := color.Opposite()

	kingsideRight, queensideRight := b.Castle.WK, b.Castle.WQ
	if color == Black {
		kingsideRight, queensideRight = b.Castle.BK, b.Castle.BQ
	}

	if kingsideRight {
		rook := b.PieceAt(Square{File: 7, Rank: rank})
		transit := Square{File: 5, Rank: rank}
		dest := Square{File: 6, Rank: rank}
		if rook != nil && rook.Kind == Rook && !rook.HasMoved &&
			b.IsEmpty(transit) && b.IsEmpty(dest) &&
			!Threatens(b, kingSq, opponent) && !Threatens(b, transit, opponent) && !Threatens(b, dest, opponent) {
			if mv, err := NewMoveBuilder(kingSq, dest, *king).Castling().Build(); err == nil {
				moves = append(moves, mv)
			}
		}
	}

	if queensideRight {
		rook := b.PieceAt(Square{File: 0, Rank: rank})
		knightSq := Square{File: 1, Rank: rank}
		transit := Square{File: 3, Rank: rank}
		dest := Square{File: 2, Rank: rank}
		if rook != nil && rook.Kind == Rook && !rook.HasMoved &&
			b.IsEmpty(knightSq) && b.IsEmpty(transit) && b.IsEmpty(dest) &&
			!Threatens(b, kingSq, opponent) && !Threatens(b, transit, opponent) && !Threatens(b, dest, opponent) {
			if mv, err := NewMoveBuilder(kingSq, dest, *king).Castling().Build(); err == nil {
				moves = append(moves, mv)
			}
		}
	}
	return moves
}

// LegalMoves returns every legal move for color on b: the union of
// pseudo-legal native, castling, and transporter moves, filtered so
// that no returned move leaves color's own king under native attack.
// King moves (native steps, castling, and the king's own transporter
// moves alike) are additionally filtered against Threatens, forbidding
// the king from stepping into a square reachable only by an opposing
// transporter move (spec.md §4.F step 4, §9's resolved Open Question).
func LegalMoves(b *Board, color Color) []Move {
	candidates := pseudoNativeMoves(b, color)
	candidates = append(candidates, generateCastlingMoves(b, color)...)
	candidates = append(candidates, pseudoTransporterMoves(b, color)...)

	opponent := color.Opposite()
	var legal []Move
	for _, mv := range candidates {
		clone := b.Clone()
		clone.Apply(mv)
		kingSq := clone.KingSquare(color)

		var unsafe bool
		if mv.Mover.Kind == King {
			unsafe = Threatens(clone, kingSq, opponent)
		} else {
			unsafe = NativeAttacks(clone, kingSq, opponent)
		}
		if !unsafe {
			legal = append(legal, mv)
		}
	}
	return legal
}
