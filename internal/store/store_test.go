package store

import (
	"errors"
	"testing"

	"github.com/tether-chess/tether-chess/internal/engine"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	eng := engine.NewGame()
	result := eng.Apply(engine.Square{File: 4, Rank: 1}, engine.Square{File: 4, Rank: 3}, nil) // e2-e4
	if !result.OK {
		t.Fatalf("unexpected Apply failure: %s", result.Message)
	}

	snap := Snapshot{Board: eng.BoardView(), History: eng.History()}
	if err := s.Save("game-1", snap); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := s.Load("game-1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.GameID != "game-1" {
		t.Errorf("GameID = %q, want %q", loaded.GameID, "game-1")
	}
	if loaded.SavedAt == 0 {
		t.Error("expected SavedAt to be stamped on save")
	}
	if len(loaded.History) != 1 {
		t.Fatalf("len(History) = %d, want 1", len(loaded.History))
	}
}

func TestLoadMissingGameReturnsErrNotFound(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	_, err = s.Load("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestListReturnsAllPersistedGames(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	for _, id := range []string{"g1", "g2", "g3"} {
		if err := s.Save(id, Snapshot{}); err != nil {
			t.Fatalf("Save(%q) error: %v", id, err)
		}
	}

	ids, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("len(ids) = %d, want 3", len(ids))
	}
}

func TestReplayReconstructsEngine(t *testing.T) {
	eng := engine.NewGame()
	moves := [][2]engine.Square{
		{{File: 4, Rank: 1}, {File: 4, Rank: 3}}, // e2-e4
		{{File: 4, Rank: 6}, {File: 4, Rank: 4}}, // e7-e5
	}
	for _, mv := range moves {
		if res := eng.Apply(mv[0], mv[1], nil); !res.OK {
			t.Fatalf("unexpected Apply failure: %s", res.Message)
		}
	}

	snap := Snapshot{Board: eng.BoardView(), History: eng.History()}
	replayed, err := Replay(snap)
	if err != nil {
		t.Fatalf("Replay() error: %v", err)
	}
	if len(replayed.History()) != len(snap.History) {
		t.Fatalf("len(replayed.History()) = %d, want %d", len(replayed.History()), len(snap.History))
	}
	if replayed.State().WhiteToMove != eng.State().WhiteToMove {
		t.Error("replayed engine should have the same side to move as the original")
	}
}

func TestReplayRejectsIllegalHistory(t *testing.T) {
	illegalPromotion := engine.Queen
	snap := Snapshot{History: []engine.Move{
		{From: engine.Square{File: 0, Rank: 1}, To: engine.Square{File: 0, Rank: 4}, Promotion: &illegalPromotion},
	}}
	if _, err := Replay(snap); err == nil {
		t.Fatal("expected Replay to reject a history containing an illegal move")
	}
}
