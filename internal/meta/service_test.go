package meta

import (
	"context"
	"errors"
	"testing"

	"github.com/twinsuns/league-hq/internal/cards"
	"github.com/twinsuns/league-hq/internal/deck"
)

type fakeDeckSource struct {
	decks []*deck.Deck
	err   error
}

func (f *fakeDeckSource) ListDecks(ctx context.Context, tournamentID string) ([]*deck.Deck, error) {
	return f.decks, f.err
}

func intPtr(v int) *int { return &v }

func testSnapshot() *cards.Snapshot {
	return cards.NewSnapshot([]cards.CardRecord{
		{CardID: "sor-1", Name: "Director Krennic", Type: "Leader", Aspects: []string{"Villainy", "Vigilance"}},
		{CardID: "sor-10", Name: "Luke Skywalker", Type: "Leader", Aspects: []string{"Heroism", "Vigilance"}},
		{CardID: "sor-19", Name: "Security Complex", Type: "Base", Aspects: []string{"Vigilance"}},
		{CardID: "sor-7", Name: "2-1B Surgical Droid", Type: "Unit", Cost: intPtr(1), Aspects: []string{"Vigilance"}},
		{CardID: "sor-65", Name: "Vanquish", Type: "Event", Cost: intPtr(5), Aspects: []string{"Vigilance"}},
	}, nil)
}

func TestSnapshotAggregatesField(t *testing.T) {
	source := &fakeDeckSource{decks: []*deck.Deck{
		{
			Leader:    "sor-1",
			Base:      "sor-19",
			Mainboard: deck.Board{"sor-7": 3, "sor-65": 2},
		},
		{
			Leader:    "sor-1",
			Base:      "sor-19",
			Mainboard: deck.Board{"sor-7": 2},
		},
		{
			Leader:    "SOR_010", // spelling drift heals on aggregation
			Base:      "sor-19",
			Mainboard: deck.Board{"sor-65": 1},
		},
	}}

	svc := NewService(source, nil)
	ms, err := svc.Snapshot(context.Background(), "t1", testSnapshot())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if ms.DeckCount != 3 {
		t.Errorf("DeckCount = %d, want 3", ms.DeckCount)
	}

	if len(ms.Archetypes) != 2 {
		t.Fatalf("Archetypes = %+v, want 2 buckets", ms.Archetypes)
	}
	if ms.Archetypes[0].Label != "Director Krennic / Security Complex" || ms.Archetypes[0].Value != 2 {
		t.Errorf("top archetype = %+v", ms.Archetypes[0])
	}

	if len(ms.MostPlayed) == 0 {
		t.Fatal("MostPlayed is empty")
	}
	top := ms.MostPlayed[0]
	if top.CardID != "sor-7" || top.Copies != 5 || top.Decks != 2 {
		t.Errorf("most played = %+v, want sor-7 with 5 copies in 2 decks", top)
	}

	// All field cards are Vigilance; the aspect rollup reflects that.
	if len(ms.ByAspect) != 1 || ms.ByAspect[0].Label != "Vigilance" || ms.ByAspect[0].Value != 8 {
		t.Errorf("ByAspect = %+v, want Vigilance 8", ms.ByAspect)
	}
}

func TestSnapshotPropagatesSourceError(t *testing.T) {
	svc := NewService(&fakeDeckSource{err: errors.New("db down")}, nil)
	if _, err := svc.Snapshot(context.Background(), "t1", testSnapshot()); err == nil {
		t.Error("Snapshot() expected error")
	}
}

func TestArchetypeLabelDegradesUnknownIDs(t *testing.T) {
	d := &deck.Deck{Leader: "ZZZ_007", Base: "sor-19"}
	got := archetypeLabel(d, testSnapshot())
	if got != "zzz-7 / Security Complex" {
		t.Errorf("archetypeLabel() = %q", got)
	}
}
