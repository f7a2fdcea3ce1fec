// Package analysis derives composition metrics from any weighted card
// collection. The same computation serves a single deck in the deckbuilder
// and a whole card pool on the meta dashboards; only the input differs.
package analysis

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/twinsuns/league-hq/internal/cards"
)

// SynergyDisplayLimit caps how many synergy buckets dashboards show. The
// full distribution stays available on Metrics; truncation is presentation
// only.
const SynergyDisplayLimit = 20

// Aspect sets that define alignment. Alignment is derived from aspect
// membership, never stored on the card.
var (
	villainyAspects = map[string]bool{"Villainy": true}
	heroicAspects   = map[string]bool{"Heroism": true, "Heroic": true}
)

// Entry is one weighted collection member.
type Entry struct {
	Card     *cards.CardRecord
	Quantity int
}

// Bucket is one labeled count in a distribution.
type Bucket struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Metrics is the derived, read-only aggregate over a weighted collection.
// Every distribution is sorted by descending count, ties by ascending label
// (numeric-aware), so output is deterministic.
type Metrics struct {
	TotalQuantity int `json:"total_quantity"`
	UniqueCards   int `json:"unique_cards"`

	ByCost      []Bucket `json:"by_cost"`
	ByPower     []Bucket `json:"by_power"`
	ByHP        []Bucket `json:"by_hp"`
	ByType      []Bucket `json:"by_type"`
	ByRarity    []Bucket `json:"by_rarity"`
	ByAspect    []Bucket `json:"by_aspect"`
	ByAlignment []Bucket `json:"by_alignment"`
	ByArena     []Bucket `json:"by_arena"`
	BySynergy   []Bucket `json:"by_synergy"`

	// Aspect fit relative to the allowed-aspect set, when one was given.
	InAspect    int `json:"in_aspect"`
	OutOfAspect int `json:"out_of_aspect"`
}

// TopSynergies returns the leading synergy buckets for display.
func (m *Metrics) TopSynergies(limit int) []Bucket {
	if limit <= 0 || limit > len(m.BySynergy) {
		return m.BySynergy
	}
	return m.BySynergy[:limit]
}

// Alignment classifies a card by its aspects. Villainy takes precedence
// over Heroic when both are somehow present.
func Alignment(card *cards.CardRecord) string {
	for _, a := range card.Aspects {
		if villainyAspects[a] {
			return "Villainy"
		}
	}
	for _, a := range card.Aspects {
		if heroicAspects[a] {
			return "Heroic"
		}
	}
	return "Neither"
}

// Analyze accumulates every grouping dimension over the collection. Entries
// with a nil card or non-positive quantity are skipped. allowedAspects, when
// non-nil, drives the in/out-of-aspect split: a card is out of aspect if it
// carries at least one aspect missing from the set.
func Analyze(entries []Entry, allowedAspects map[string]bool) *Metrics {
	m := &Metrics{}

	cost := map[string]int{}
	power := map[string]int{}
	hp := map[string]int{}
	typ := map[string]int{}
	rarity := map[string]int{}
	aspect := map[string]int{}
	alignment := map[string]int{}
	arena := map[string]int{}
	synergy := map[string]int{}
	outOfAspect := 0
	seen := map[string]bool{}

	for _, e := range entries {
		if e.Card == nil || e.Quantity <= 0 {
			continue
		}
		card := e.Card
		q := e.Quantity

		m.TotalQuantity += q
		// The same card can arrive as multiple entries, one per source
		// deck. UniqueCards counts distinct cards, not entries.
		if !seen[card.CardID] {
			seen[card.CardID] = true
			m.UniqueCards++
		}

		cost[numericLabel(card.Cost)] += q
		power[numericLabel(card.Power)] += q
		hp[numericLabel(card.HP)] += q
		typ[stringLabel(card.Type)] += q
		rarity[stringLabel(card.Rarity)] += q
		alignment[Alignment(card)] += q

		if len(card.Aspects) == 0 {
			aspect["None"] += q
		}
		for _, a := range card.Aspects {
			aspect[a] += q
		}

		if len(card.Arenas) == 0 {
			arena["None"] += q
		}
		for _, a := range card.Arenas {
			arena[a] += q
		}

		for _, k := range card.Keywords {
			synergy["Keyword: "+k] += q
		}
		for _, tr := range card.Traits {
			synergy["Trait: "+tr] += q
		}

		if allowedAspects != nil && hasForeignAspect(card, allowedAspects) {
			outOfAspect += q
		}
	}

	if allowedAspects != nil {
		if outOfAspect > m.TotalQuantity {
			outOfAspect = m.TotalQuantity
		}
		m.OutOfAspect = outOfAspect
		m.InAspect = m.TotalQuantity - outOfAspect
		if m.InAspect < 0 {
			m.InAspect = 0
		}
	}

	m.ByCost = sortedBuckets(cost)
	m.ByPower = sortedBuckets(power)
	m.ByHP = sortedBuckets(hp)
	m.ByType = sortedBuckets(typ)
	m.ByRarity = sortedBuckets(rarity)
	m.ByAspect = sortedBuckets(aspect)
	m.ByAlignment = sortedBuckets(alignment)
	m.ByArena = sortedBuckets(arena)
	m.BySynergy = sortedBuckets(synergy)
	return m
}

func hasForeignAspect(card *cards.CardRecord, allowed map[string]bool) bool {
	for _, a := range card.Aspects {
		if !allowed[a] {
			return true
		}
	}
	return false
}

func numericLabel(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func stringLabel(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func sortedBuckets(counts map[string]int) []Bucket {
	// Collators are not safe for concurrent use, so build one per sort.
	// Numeric ordering keeps "2" ahead of "10" in tie-breaks.
	labelCollator := collate.New(language.English, collate.Numeric)
	buckets := make([]Bucket, 0, len(counts))
	for label, value := range counts {
		buckets = append(buckets, Bucket{Label: label, Value: value})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return labelCollator.CompareString(buckets[i].Label, buckets[j].Label) < 0
	})
	return buckets
}
