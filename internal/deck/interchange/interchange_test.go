package interchange

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/twinsuns/league-hq/internal/cards"
	"github.com/twinsuns/league-hq/internal/deck"
)

func testSnapshot() *cards.Snapshot {
	return cards.NewSnapshot([]cards.CardRecord{
		{CardID: "sor-1", Name: "Director Krennic", Type: "Leader"},
		{CardID: "sor-19", Name: "Security Complex", Type: "Base"},
		{CardID: "sor-7", Name: "2-1B Surgical Droid", Type: "Unit"},
		{CardID: "sor-65", Name: "Vanquish", Type: "Event"},
		{CardID: "twi-123a", Name: "Variant Unit", Type: "Unit"},
	}, nil)
}

func TestToInterchangeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sor-7", "SOR_007"},
		{"sor-123", "SOR_123"},
		{"twi-123a", "TWI_123A"},
		{"sor-7a", "SOR_007A"},
		{"weird-id-thing", "WEIRD_ID_THING"},
	}
	for _, tt := range tests {
		if got := ToInterchangeID(tt.in); got != tt.want {
			t.Errorf("ToInterchangeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestImport(t *testing.T) {
	payload := `{
		"metadata": {"name": "Krennic Control", "author": "p1"},
		"leader": {"id": "SOR_001", "count": 1},
		"base": {"id": "SOR_019", "count": 1},
		"deck": [
			{"id": "SOR_007", "count": 3},
			{"id": "SOR_065", "count": 2}
		],
		"sideboard": [
			{"id": "SOR_065", "count": 1}
		]
	}`

	result, err := Import([]byte(payload), testSnapshot())
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	d := result.Deck
	if d.Name != "Krennic Control" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.Leader != "sor-1" || d.Base != "sor-19" {
		t.Errorf("Leader/Base = %q/%q, want sor-1/sor-19", d.Leader, d.Base)
	}
	wantMain := deck.Board{"sor-7": 3, "sor-65": 2}
	if !reflect.DeepEqual(d.Mainboard, wantMain) {
		t.Errorf("Mainboard = %v, want %v", d.Mainboard, wantMain)
	}
	wantSide := deck.Board{"sor-65": 1}
	if !reflect.DeepEqual(d.Sideboard, wantSide) {
		t.Errorf("Sideboard = %v, want %v", d.Sideboard, wantSide)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestImportRejectsMalformedPayloads(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "Not JSON", payload: `this is not json`},
		{name: "Missing leader", payload: `{"metadata":{"name":"x"},"base":{"id":"SOR_019","count":1},"deck":[]}`},
		{name: "Missing base", payload: `{"metadata":{"name":"x"},"leader":{"id":"SOR_001","count":1},"deck":[]}`},
		{name: "Unknown leader", payload: `{"metadata":{"name":"x"},"leader":{"id":"ZZZ_999","count":1},"base":{"id":"SOR_019","count":1}}`},
		{name: "Empty leader id", payload: `{"metadata":{"name":"x"},"leader":{"id":"","count":1},"base":{"id":"SOR_019","count":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Import([]byte(tt.payload), snap)
			if err == nil {
				t.Fatal("Import() expected error, got nil")
			}
			if result != nil {
				t.Errorf("partial import committed: %+v", result)
			}
		})
	}
}

func TestImportSkipsUnknownListEntries(t *testing.T) {
	payload := `{
		"metadata": {"name": "x"},
		"leader": {"id": "SOR_001", "count": 1},
		"base": {"id": "SOR_019", "count": 1},
		"deck": [
			{"id": "SOR_007", "count": 3},
			{"id": "ZZZ_999", "count": 2}
		]
	}`

	result, err := Import([]byte(payload), testSnapshot())
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "ZZZ_999") {
		t.Errorf("Warnings = %v, want one mentioning ZZZ_999", result.Warnings)
	}
	if _, ok := result.Deck.Mainboard["sor-7"]; !ok {
		t.Errorf("known entry not imported: %v", result.Deck.Mainboard)
	}
	if len(result.Deck.Mainboard) != 1 {
		t.Errorf("Mainboard = %v, want only sor-7", result.Deck.Mainboard)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	snap := testSnapshot()
	original := &deck.Deck{
		Name:      "Round Trip",
		Leader:    "sor-1",
		Base:      "sor-19",
		Mainboard: deck.Board{"sor-7": 3, "sor-65": 2, "twi-123a": 1},
		Sideboard: deck.Board{"sor-65": 1},
	}

	data, err := Export(original, "p1")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// The export uses the interchange id convention.
	var list Decklist
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("exported payload is not valid JSON: %v", err)
	}
	if list.Leader.ID != "SOR_001" {
		t.Errorf("exported leader id = %q, want SOR_001", list.Leader.ID)
	}

	result, err := Import(data, snap)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !reflect.DeepEqual(result.Deck.Mainboard, original.Mainboard) {
		t.Errorf("round trip mainboard = %v, want %v", result.Deck.Mainboard, original.Mainboard)
	}
	if !reflect.DeepEqual(result.Deck.Sideboard, original.Sideboard) {
		t.Errorf("round trip sideboard = %v, want %v", result.Deck.Sideboard, original.Sideboard)
	}
	if result.Deck.Leader != original.Leader || result.Deck.Base != original.Base {
		t.Errorf("round trip leader/base = %q/%q", result.Deck.Leader, result.Deck.Base)
	}
}
