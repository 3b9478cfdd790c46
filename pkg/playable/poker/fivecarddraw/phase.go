package fivecarddraw

// Phase is a stage in the life of a hand
type Phase int

// phase constants, in the order a hand progresses
const (
	PhaseIdle Phase = iota
	PhaseSetup
	PhaseFirstBetting
	PhaseExchange
	PhaseSecondBetting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSetup:
		return "setup"
	case PhaseFirstBetting:
		return "first-betting"
	case PhaseExchange:
		return "card-exchange"
	case PhaseSecondBetting:
		return "second-betting"
	}

	panic("unknown phase")
}

// isBetting returns true for the two betting phases
func (p Phase) isBetting() bool {
	return p == PhaseFirstBetting || p == PhaseSecondBetting
}
