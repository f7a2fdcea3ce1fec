package league

// Pairing is one table assignment within a round. An empty PlayerB marks a
// bye.
type Pairing struct {
	Round   int    `json:"round"`
	Table   int    `json:"table"`
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b,omitempty"`
}

// RoundRobinSchedule generates a full round-robin schedule using the circle
// method: one player fixed, the rest rotating each round. Odd player counts
// get a phantom opponent, which surfaces as a bye. Player order in the
// input does not affect who plays whom, only the round layout.
func RoundRobinSchedule(players []string) []Pairing {
	if len(players) < 2 {
		return nil
	}

	ring := make([]string, len(players))
	copy(ring, players)
	if len(ring)%2 == 1 {
		ring = append(ring, "") // phantom = bye
	}

	n := len(ring)
	rounds := n - 1
	half := n / 2

	var schedule []Pairing
	for round := 1; round <= rounds; round++ {
		table := 1
		for i := 0; i < half; i++ {
			a, b := ring[i], ring[n-1-i]
			if a == "" {
				a, b = b, a
			}
			if a == "" {
				continue
			}
			schedule = append(schedule, Pairing{
				Round:   round,
				Table:   table,
				PlayerA: a,
				PlayerB: b,
			})
			table++
		}

		// Rotate all but the first position.
		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	return schedule
}
