package analysis

import (
	"reflect"
	"testing"

	"github.com/twinsuns/league-hq/internal/cards"
)

func intPtr(v int) *int { return &v }

func unit(id, typ, rarity string, cost int, aspects, traits, keywords, arenas []string) *cards.CardRecord {
	return &cards.CardRecord{
		CardID:   id,
		Name:     id,
		Type:     typ,
		Rarity:   rarity,
		Cost:     intPtr(cost),
		Aspects:  aspects,
		Traits:   traits,
		Keywords: keywords,
		Arenas:   arenas,
	}
}

func bucketValue(buckets []Bucket, label string) int {
	for _, b := range buckets {
		if b.Label == label {
			return b.Value
		}
	}
	return 0
}

func TestAnalyzeTotalsAndCost(t *testing.T) {
	entries := []Entry{
		{Card: unit("sor-7", "Unit", "Common", 1, []string{"Vigilance"}, nil, nil, []string{"Ground"}), Quantity: 3},
		{Card: unit("sor-65", "Event", "Common", 5, []string{"Vigilance"}, nil, nil, nil), Quantity: 2},
		{Card: &cards.CardRecord{CardID: "sor-19", Name: "sor-19", Type: "Base"}, Quantity: 1},
	}

	m := Analyze(entries, nil)

	if m.TotalQuantity != 6 {
		t.Errorf("TotalQuantity = %d, want 6", m.TotalQuantity)
	}
	if m.UniqueCards != 3 {
		t.Errorf("UniqueCards = %d, want 3", m.UniqueCards)
	}
	if got := bucketValue(m.ByCost, "1"); got != 3 {
		t.Errorf("ByCost[1] = %d, want 3", got)
	}
	if got := bucketValue(m.ByCost, "-"); got != 1 {
		t.Errorf("ByCost[-] = %d, want 1 (nil cost)", got)
	}
	if got := bucketValue(m.ByType, "Base"); got != 1 {
		t.Errorf("ByType[Base] = %d, want 1", got)
	}
	if got := bucketValue(m.ByRarity, "Unknown"); got != 1 {
		t.Errorf("ByRarity[Unknown] = %d, want 1", got)
	}
}

func TestAnalyzeUniqueCardsDedupesEntries(t *testing.T) {
	// A card used in several decks arrives as one entry per deck; it is
	// still one unique card, while quantities sum as usual.
	droid := unit("sor-7", "Unit", "Common", 1, nil, nil, nil, nil)
	entries := []Entry{
		{Card: droid, Quantity: 3},
		{Card: droid, Quantity: 2},
		{Card: unit("sor-65", "Event", "Common", 5, nil, nil, nil, nil), Quantity: 1},
	}

	m := Analyze(entries, nil)

	if m.UniqueCards != 2 {
		t.Errorf("UniqueCards = %d, want 2", m.UniqueCards)
	}
	if m.TotalQuantity != 6 {
		t.Errorf("TotalQuantity = %d, want 6", m.TotalQuantity)
	}
}

func TestAnalyzeAspectMultiMembership(t *testing.T) {
	entries := []Entry{
		{Card: unit("a", "Unit", "Common", 2, []string{"Aggression", "Villainy"}, nil, nil, nil), Quantity: 4},
		{Card: unit("b", "Unit", "Common", 2, []string{"Aggression"}, nil, nil, nil), Quantity: 6},
		{Card: unit("c", "Unit", "Common", 2, nil, nil, nil, nil), Quantity: 2},
	}

	m := Analyze(entries, nil)

	if got := bucketValue(m.ByAspect, "Aggression"); got != 10 {
		t.Errorf("ByAspect[Aggression] = %d, want 10", got)
	}
	if got := bucketValue(m.ByAspect, "None"); got != 2 {
		t.Errorf("ByAspect[None] = %d, want 2", got)
	}

	// Multi-aspect cards count once per aspect, so the aspect sum can
	// exceed the total quantity but never undershoot it.
	sum := 0
	for _, b := range m.ByAspect {
		sum += b.Value
	}
	if sum < m.TotalQuantity {
		t.Errorf("aspect sum %d < total %d", sum, m.TotalQuantity)
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		name    string
		aspects []string
		want    string
	}{
		{name: "Villainy", aspects: []string{"Villainy", "Command"}, want: "Villainy"},
		{name: "Heroism", aspects: []string{"Heroism", "Cunning"}, want: "Heroic"},
		{name: "Villainy precedence", aspects: []string{"Heroism", "Villainy"}, want: "Villainy"},
		{name: "Neither", aspects: []string{"Aggression"}, want: "Neither"},
		{name: "No aspects", aspects: nil, want: "Neither"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &cards.CardRecord{Aspects: tt.aspects}
			if got := Alignment(card); got != tt.want {
				t.Errorf("Alignment(%v) = %q, want %q", tt.aspects, got, tt.want)
			}
		})
	}
}

func TestAnalyzeSynergyLabels(t *testing.T) {
	entries := []Entry{
		{Card: unit("a", "Unit", "Common", 2, nil, []string{"Droid"}, []string{"Sentinel"}, nil), Quantity: 3},
		{Card: unit("b", "Unit", "Common", 2, nil, []string{"Droid"}, nil, nil), Quantity: 2},
	}

	m := Analyze(entries, nil)

	if got := bucketValue(m.BySynergy, "Trait: Droid"); got != 5 {
		t.Errorf("BySynergy[Trait: Droid] = %d, want 5", got)
	}
	if got := bucketValue(m.BySynergy, "Keyword: Sentinel"); got != 3 {
		t.Errorf("BySynergy[Keyword: Sentinel] = %d, want 3", got)
	}
}

func TestTopSynergiesTruncates(t *testing.T) {
	entries := make([]Entry, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, Entry{
			Card:     unit(string(rune('a'+i%26))+"x", "Unit", "Common", 1, nil, []string{"T" + string(rune('a'+i))}, nil, nil),
			Quantity: 1,
		})
	}

	m := Analyze(entries, nil)
	if len(m.BySynergy) != 30 {
		t.Fatalf("full synergy data = %d buckets, want 30", len(m.BySynergy))
	}
	if got := len(m.TopSynergies(SynergyDisplayLimit)); got != SynergyDisplayLimit {
		t.Errorf("TopSynergies = %d buckets, want %d", got, SynergyDisplayLimit)
	}
	if got := len(m.TopSynergies(0)); got != 30 {
		t.Errorf("TopSynergies(0) = %d buckets, want full 30", got)
	}
}

func TestAspectFitSplit(t *testing.T) {
	aggression := unit("a", "Unit", "Common", 2, []string{"Aggression"}, nil, nil, nil)
	cunning := unit("b", "Unit", "Common", 2, []string{"Cunning"}, nil, nil, nil)
	aspectless := unit("c", "Unit", "Common", 2, nil, nil, nil, nil)

	tests := []struct {
		name    string
		entries []Entry
		allowed map[string]bool
		wantIn  int
		wantOut int
	}{
		{
			name:    "All allowed",
			entries: []Entry{{Card: aggression, Quantity: 3}},
			allowed: map[string]bool{"Aggression": true},
			wantIn:  3, wantOut: 0,
		},
		{
			name:    "Foreign aspect",
			entries: []Entry{{Card: aggression, Quantity: 3}, {Card: cunning, Quantity: 2}},
			allowed: map[string]bool{"Aggression": true},
			wantIn:  3, wantOut: 2,
		},
		{
			name:    "Empty allowed set, aspected cards all out",
			entries: []Entry{{Card: aggression, Quantity: 3}},
			allowed: map[string]bool{},
			wantIn:  0, wantOut: 3,
		},
		{
			name:    "Aspectless always in",
			entries: []Entry{{Card: aspectless, Quantity: 4}},
			allowed: map[string]bool{},
			wantIn:  4, wantOut: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Analyze(tt.entries, tt.allowed)
			if m.InAspect != tt.wantIn || m.OutOfAspect != tt.wantOut {
				t.Errorf("split = %d/%d, want %d/%d", m.InAspect, m.OutOfAspect, tt.wantIn, tt.wantOut)
			}
			if m.InAspect+m.OutOfAspect != m.TotalQuantity {
				t.Errorf("in %d + out %d != total %d", m.InAspect, m.OutOfAspect, m.TotalQuantity)
			}
		})
	}
}

func TestSortedBucketsDeterministic(t *testing.T) {
	entries := []Entry{
		{Card: unit("a", "Unit", "Common", 10, nil, nil, nil, nil), Quantity: 2},
		{Card: unit("b", "Unit", "Common", 2, nil, nil, nil, nil), Quantity: 2},
		{Card: unit("c", "Unit", "Common", 3, nil, nil, nil, nil), Quantity: 5},
	}

	m := Analyze(entries, nil)

	// Descending by count; ties ascending by numeric-aware label, so "2"
	// sorts before "10".
	want := []Bucket{{Label: "3", Value: 5}, {Label: "2", Value: 2}, {Label: "10", Value: 2}}
	if !reflect.DeepEqual(m.ByCost, want) {
		t.Errorf("ByCost = %v, want %v", m.ByCost, want)
	}
}
