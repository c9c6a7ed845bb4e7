package engine

// TerminalState enumerates how (or whether) a game has concluded.
// DrawByRepetition, DrawByFiftyMoves, and DrawByInsufficientMaterial are
// reserved enumerants only: spec.md §1 lists them as non-goals, so the
// engine never produces them, but analysis code that switches over
// TerminalState has a name to handle if it chooses to.
type TerminalState int

const (
	InProgress TerminalState = iota
	WhiteWinsCheckmate
	BlackWinsCheckmate
	Stalemate
	DrawByRepetition
	DrawByFiftyMoves
	DrawByInsufficientMaterial
)

func (t TerminalState) String() string {
	switch t {
	case InProgress:
		return "in_progress"
	case WhiteWinsCheckmate:
		return "white_wins_checkmate"
	case BlackWinsCheckmate:
		return "black_wins_checkmate"
	case Stalemate:
		return "stalemate"
	case DrawByRepetition:
		return "draw_by_repetition"
	case DrawByFiftyMoves:
		return "draw_by_fifty_moves"
	case DrawByInsufficientMaterial:
		return "draw_by_insufficient_material"
	default:
		return "unknown"
	}
}

// GameState is a point-in-time summary of the engine's position.
type GameState struct {
	WhiteToMove bool
	MoveCount   int
	InCheck     bool
	Terminal    TerminalState
}

// MoveResult is the outcome of a single Engine.Apply call (spec.md §6).
type MoveResult struct {
	OK          bool
	Message     string
	Move        *Move
	GivesCheck  bool
	IsCheckmate bool
}

// Engine is the rule engine's orchestration surface: turn management,
// move application, and terminal-state / analysis queries. It owns a
// single Board and is the sole scope of all mutable state (spec.md §9's
// "no global state" note).
type Engine struct {
	board *Board
}

// NewGame returns an Engine set up in the standard starting position.
func NewGame() *Engine {
	b := NewBoard()
	b.SetupStandard()
	return &Engine{board: b}
}

// LegalMoves returns every legal move for the side to move.
func (e *Engine) LegalMoves() []Move {
	return LegalMoves(e.board, e.board.ToMoveColor())
}

// LegalMovesFrom returns every legal move originating at sq.
func (e *Engine) LegalMovesFrom(sq Square) []Move {
	var out []Move
	for _, mv := range e.LegalMoves() {
		if mv.From == sq {
			out = append(out, mv)
		}
	}
	return out
}

// State summarizes the current position: whose turn it is, how many
// plies have been played, whether the side to move is in check, and
// the terminal outcome (if any). Computed fresh on every call rather
// than cached, so it can never go stale relative to the board.
func (e *Engine) State() GameState {
	toMove := e.board.ToMoveColor()
	opponent := toMove.Opposite()
	kingSq := e.board.KingSquare(toMove)
	inCheck := NativeAttacks(e.board, kingSq, opponent)
	legal := LegalMoves(e.board, toMove)

	terminal := InProgress
	if len(legal) == 0 {
		switch {
		case inCheck && toMove == White:
			terminal = BlackWinsCheckmate
		case inCheck && toMove == Black:
			terminal = WhiteWinsCheckmate
		default:
			terminal = Stalemate
		}
	}

	return GameState{
		WhiteToMove: e.board.WhiteToMove,
		MoveCount:   len(e.board.History),
		InCheck:     inCheck,
		Terminal:    terminal,
	}
}

// BoardView returns a display-safe snapshot of the current position.
func (e *Engine) BoardView() BoardSnapshot {
	return e.board.Snapshot()
}

// History returns every move played so far, oldest first.
func (e *Engine) History() []Move {
	return append([]Move(nil), e.board.History...)
}

// RankMatesOf returns the squares of the friendly pieces sharing sq's
// rank with the piece standing there, or nil if sq is empty.
func (e *Engine) RankMatesOf(sq Square) []Square {
	p := e.board.PieceAt(sq)
	if p == nil {
		return nil
	}
	var out []Square
	for _, mate := range e.board.RankMates(p) {
		out = append(out, mate.Square)
	}
	return out
}

// Apply attempts to play the move (from, to, promotion) for the side
// whose turn it is. Illegal or malformed requests leave the board
// unchanged (spec.md §7); promotion may be nil, in which case a move
// that requires a promotion choice silently defaults to Queen, the
// engine's documented behavior for AmbiguousPromotion (spec.md §6, §9).
func (e *Engine) Apply(from, to Square, promotion *PieceKind) MoveResult {
	if !from.IsValid() {
		return MoveResult{Message: InvalidSquareError(from.String()).Error()}
	}
	if !to.IsValid() {
		return MoveResult{Message: InvalidSquareError(to.String()).Error()}
	}

	if state := e.State(); state.Terminal != InProgress {
		return MoveResult{Message: ErrGameOver.Error()}
	}

	mover := e.board.PieceAt(from)
	if mover == nil {
		return MoveResult{Message: ErrEmptySource.Error()}
	}
	if mover.Color != e.board.ToMoveColor() {
		return MoveResult{Message: ErrWrongColorToMove.Error()}
	}

	var matches []Move
	for _, mv := range e.LegalMovesFrom(from) {
		if mv.To == to {
			matches = append(matches, mv)
		}
	}
	if len(matches) == 0 {
		return MoveResult{Message: ErrIllegalMove.Error()}
	}

	chosen := matches[0]
	if len(matches) > 1 {
		chosen = disambiguatePromotion(matches, promotion)
	}

	e.board.Apply(chosen)

	newState := e.State()
	isCheckmate := newState.Terminal == WhiteWinsCheckmate || newState.Terminal == BlackWinsCheckmate

	return MoveResult{
		OK:          true,
		Message:     chosen.String(),
		Move:        &chosen,
		GivesCheck:  newState.InCheck,
		IsCheckmate: isCheckmate,
	}
}

// disambiguatePromotion picks among several legal moves sharing a
// (from, to) pair -- promotion variants, and/or transporter moves that
// borrow the same vector from different rank-mates -- preferring the
// caller's requested promotion kind, then Queen, then the first match.
func disambiguatePromotion(matches []Move, promotion *PieceKind) Move {
	if promotion != nil {
		for _, mv := range matches {
			if mv.Promotion != nil && *mv.Promotion == *promotion {
				return mv
			}
		}
	}
	for _, mv := range matches {
		if mv.Promotion != nil && *mv.Promotion == Queen {
			return mv
		}
	}
	return matches[0]
}

// TransporterMoves returns every legal move that borrows a rank-mate's
// movement.
func (e *Engine) TransporterMoves() []Move {
	var out []Move
	for _, mv := range e.LegalMoves() {
		if mv.IsTransporter() {
			out = append(out, mv)
		}
	}
	return out
}

// PawnKnightApexMoves returns every legal Pawn-Knight Apex promotion.
func (e *Engine) PawnKnightApexMoves() []Move {
	var out []Move
	for _, mv := range e.LegalMoves() {
		if mv.IsPawnKnightApex() {
			out = append(out, mv)
		}
	}
	return out
}

// CheckingMoves returns every legal move whose post-move position
// natively attacks the opponent's king.
func (e *Engine) CheckingMoves() []Move {
	color := e.board.ToMoveColor()
	opponent := color.Opposite()
	var out []Move
	for _, mv := range e.LegalMoves() {
		clone := e.board.Clone()
		clone.Apply(mv)
		if NativeAttacks(clone, clone.KingSquare(opponent), color) {
			out = append(out, mv)
		}
	}
	return out
}

// MichaelTalMoves returns the opening's namesake move: a Queen or Rook,
// still on its own back rank, transporting over the pawn wall by
// borrowing a back-rank Knight's L-jump. Available only before any move
// has been played.
func (e *Engine) MichaelTalMoves() []Move {
	if len(e.board.History) != 0 {
		return nil
	}
	back := homeRank(e.board.ToMoveColor())
	var out []Move
	for _, mv := range e.TransporterMoves() {
		if mv.From.Rank != back {
			continue
		}
		if mv.Mover.Kind != Queen && mv.Mover.Kind != Rook {
			continue
		}
		if mv.BorrowedFrom.Kind != Knight {
			continue
		}
		out = append(out, mv)
	}
	return out
}
