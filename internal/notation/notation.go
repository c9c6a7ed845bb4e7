// Package notation parses the minimal wire grammar for a move request:
// "from-to" or "from-to=promo", e.g. "e2-e4" or "d7-e8=Q". It exists for
// CLI and test convenience; the HTTP and WebSocket payloads decode
// squares as structured {file,rank} fields and never go through here.
package notation

import (
	"fmt"
	"strings"

	"github.com/tether-chess/tether-chess/internal/engine"
)

// ParseMove parses text of the form "from-to" or "from-to=promo" into
// its three components. promotion is nil when no "=X" suffix is present.
func ParseMove(text string) (from, to engine.Square, promotion *engine.PieceKind, err error) {
	body := text
	var promoText string
	if idx := strings.IndexByte(text, '='); idx >= 0 {
		body, promoText = text[:idx], text[idx+1:]
	}

	parts := strings.SplitN(body, "-", 2)
	if len(parts) != 2 {
		return engine.Square{}, engine.Square{}, nil, fmt.Errorf("notation: %q is not of the form from-to", text)
	}

	from, err = engine.ParseSquare(parts[0])
	if err != nil {
		return engine.Square{}, engine.Square{}, nil, fmt.Errorf("notation: %w", err)
	}
	to, err = engine.ParseSquare(parts[1])
	if err != nil {
		return engine.Square{}, engine.Square{}, nil, fmt.Errorf("notation: %w", err)
	}

	if promoText == "" {
		return from, to, nil, nil
	}
	kind, ok := parsePromotionSymbol(promoText)
	if !ok {
		return engine.Square{}, engine.Square{}, nil, fmt.Errorf("notation: %q is not a valid promotion symbol", promoText)
	}
	return from, to, &kind, nil
}

func parsePromotionSymbol(sym string) (engine.PieceKind, bool) {
	switch strings.ToUpper(sym) {
	case "Q":
		return engine.Queen, true
	case "R":
		return engine.Rook, true
	case "B":
		return engine.Bishop, true
	case "N":
		return engine.Knight, true
	default:
		return 0, false
	}
}

// Format renders (from, to, promotion) back into wire notation.
func Format(from, to engine.Square, promotion *engine.PieceKind) string {
	s := from.String() + "-" + to.String()
	if promotion != nil {
		s += "=" + promotion.Symbol()
	}
	return s
}
