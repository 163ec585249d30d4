// Package render shapes tickets into chat text and inline keyboards.
package render

import "github.com/spec-kit/helpdesk-bot/internal/domain"

var categoryLabels = map[domain.TicketCategory]string{
	domain.CategoryHardware: "Hardware",
	domain.CategorySoftware: "Software",
	domain.CategoryNetwork:  "Network",
	domain.CategoryAccount:  "Account",
	domain.CategoryOther:    "Other",
}

var priorityLabels = map[domain.TicketPriority]string{
	domain.PriorityLow:      "Low",
	domain.PriorityMedium:   "Medium",
	domain.PriorityHigh:     "High",
	domain.PriorityCritical: "Critical",
}

var statusLabels = map[domain.TicketStatus]string{
	domain.StatusNew:        "New",
	domain.StatusInProgress: "In progress",
	domain.StatusOnHold:     "On hold",
	domain.StatusResolved:   "Resolved",
	domain.StatusClosed:     "Closed",
}

var actionLabels = map[domain.TicketAction]string{
	domain.ActionTake:    "Take",
	domain.ActionHold:    "Put on hold",
	domain.ActionResolve: "Resolve",
	domain.ActionRetake:  "Retake",
	domain.ActionClose:   "Close",
}

// CategoryLabel returns the display name for a category.
func CategoryLabel(c domain.TicketCategory) string {
	return categoryLabels[c]
}

// PriorityLabel returns the display name for a priority.
func PriorityLabel(p domain.TicketPriority) string {
	return priorityLabels[p]
}

// StatusLabel returns the display name for a status.
func StatusLabel(s domain.TicketStatus) string {
	return statusLabels[s]
}

// ActionLabel returns the button caption for a lifecycle action.
func ActionLabel(a domain.TicketAction) string {
	return actionLabels[a]
}
