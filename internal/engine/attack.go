package engine

// NativeAttacks reports whether any piece of byColor natively attacks
// target. This is the check relation: the only relation that can put a
// king in check or deliver checkmate (spec.md §4.E).
func NativeAttacks(b *Board, target Square, byColor Color) bool {
	for _, p := range b.PiecesOfColor(byColor) {
		if CanNativelyAttack(p.Kind, p.Color, p.Square, target, b.IsEmpty) {
			return true
		}
	}
	return false
}

// Threatens reports whether target is either natively attacked by
// byColor or reachable by one of byColor's pseudo-legal transporter
// moves. It is used exclusively to forbid a king from stepping onto (or
// transporting to) target -- the "stealth capture prevention" clause --
// and is deliberately computed from pseudo-legal moves only, never
// through the king-safety filter, so it cannot recurse into itself
// (spec.md §4.E).
func Threatens(b *Board, target Square, byColor Color) bool {
	if NativeAttacks(b, target, byColor) {
		return true
	}
	for _, m := range pseudoTransporterMoves(b, byColor) {
		if m.To == target {
			return true
		}
	}
	return false
}
