package fivecarddraw

import "fmt"

// Action represents a betting action a player can take
type Action string

// action constants
const (
	ActionCheck Action = "check"
	ActionBet   Action = "bet"
	ActionRaise Action = "raise"
	ActionCall  Action = "call"
	ActionFold  Action = "fold"
)

var allowedActions = map[Action]bool{
	ActionCheck: true,
	ActionBet:   true,
	ActionRaise: true,
	ActionCall:  true,
	ActionFold:  true,
}

// ActionFromString returns an action for the given string
func ActionFromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case ActionCheck:
		return "Check"
	case ActionBet:
		return "Bet"
	case ActionRaise:
		return "Raise"
	case ActionCall:
		return "Call"
	case ActionFold:
		return "Fold"
	}

	panic("unknown action")
}

// requiresAmount returns true if the action takes an amount argument
func (a Action) requiresAmount() bool {
	return a == ActionBet || a == ActionRaise
}
