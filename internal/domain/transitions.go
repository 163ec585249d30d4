package domain

import "fmt"

// TicketAction enumerates administrator verbs that move a ticket through
// its lifecycle.
type TicketAction string

const (
	ActionTake    TicketAction = "take"
	ActionHold    TicketAction = "hold"
	ActionResolve TicketAction = "resolve"
	ActionRetake  TicketAction = "retake"
	ActionClose   TicketAction = "close"
)

// ParseAction validates an action verb.
func ParseAction(key string) (TicketAction, error) {
	switch TicketAction(key) {
	case ActionTake, ActionHold, ActionResolve, ActionRetake, ActionClose:
		return TicketAction(key), nil
	}
	return "", fmt.Errorf("unknown action %q", key)
}

// allowedTransitions is the only source of truth for status movement.
// StatusClosed is terminal and deliberately absent.
var allowedTransitions = map[TicketStatus]map[TicketAction]TicketStatus{
	StatusNew: {
		ActionTake:    StatusInProgress,
		ActionHold:    StatusOnHold,
		ActionResolve: StatusResolved,
	},
	StatusInProgress: {
		ActionHold:    StatusOnHold,
		ActionResolve: StatusResolved,
	},
	StatusOnHold: {
		ActionRetake: StatusInProgress,
	},
	StatusResolved: {
		ActionRetake: StatusInProgress,
		ActionClose:  StatusClosed,
	},
}

// actionOrder keeps keyboards stable.
var actionOrder = []TicketAction{ActionTake, ActionRetake, ActionHold, ActionResolve, ActionClose}

// Apply resolves the status an action leads to from the current one.
// The second return reports whether the edge exists.
func Apply(current TicketStatus, action TicketAction) (TicketStatus, bool) {
	next, ok := allowedTransitions[current][action]
	return next, ok
}

// ActionsFor lists the actions valid from the given status, in stable order.
func ActionsFor(status TicketStatus) []TicketAction {
	edges := allowedTransitions[status]
	actions := make([]TicketAction, 0, len(edges))
	for _, action := range actionOrder {
		if _, ok := edges[action]; ok {
			actions = append(actions, action)
		}
	}
	return actions
}
