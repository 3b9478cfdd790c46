package poker

// Result of comparing two tie-break keys
type Result int

// comparison results
const (
	SecondWins Result = iota - 1
	Tie
	FirstWins
)

// CompareTieBreaks compares two tie-break keys element-wise.
// The first index where the keys differ decides the result by the larger
// value. If one key is a prefix of the other, or all elements are equal,
// the result is a Tie. Both keys must come from hands of the same
// classification.
func CompareTieBreaks(a, b []int) Result {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return FirstWins
			}

			return SecondWins
		}
	}

	return Tie
}

// BettingSettled returns true if every active player has matched the same
// bet. bets maps player id to the amount bet this round; folded player ids
// are skipped. Zero or one active player settles vacuously.
func BettingSettled(bets map[int]int, folded map[int]bool) bool {
	current := -1
	for id, bet := range bets {
		if folded[id] {
			continue
		}

		if current == -1 {
			current = bet
		}

		if bet != current {
			return false
		}
	}

	return true
}
