package domain

import (
	"fmt"
	"time"
)

// TicketCategory enumerates the fixed request categories.
type TicketCategory string

const (
	CategoryHardware TicketCategory = "hardware"
	CategorySoftware TicketCategory = "software"
	CategoryNetwork  TicketCategory = "network"
	CategoryAccount  TicketCategory = "account"
	CategoryOther    TicketCategory = "other"
)

// Categories returns the category set in menu order.
func Categories() []TicketCategory {
	return []TicketCategory{CategoryHardware, CategorySoftware, CategoryNetwork, CategoryAccount, CategoryOther}
}

// ParseCategory validates a category key.
func ParseCategory(key string) (TicketCategory, error) {
	switch TicketCategory(key) {
	case CategoryHardware, CategorySoftware, CategoryNetwork, CategoryAccount, CategoryOther:
		return TicketCategory(key), nil
	}
	return "", fmt.Errorf("unknown category %q", key)
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "low"
	PriorityMedium   TicketPriority = "medium"
	PriorityHigh     TicketPriority = "high"
	PriorityCritical TicketPriority = "critical"
)

// Priorities returns the priority set in menu order.
func Priorities() []TicketPriority {
	return []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// ParsePriority validates a priority key.
func ParsePriority(key string) (TicketPriority, error) {
	switch TicketPriority(key) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return TicketPriority(key), nil
	}
	return "", fmt.Errorf("unknown priority %q", key)
}

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	StatusNew        TicketStatus = "new"
	StatusInProgress TicketStatus = "in_progress"
	StatusOnHold     TicketStatus = "on_hold"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// Statuses returns the status set in menu order.
func Statuses() []TicketStatus {
	return []TicketStatus{StatusNew, StatusInProgress, StatusOnHold, StatusResolved, StatusClosed}
}

// ParseStatus validates a status key.
func ParseStatus(key string) (TicketStatus, error) {
	switch TicketStatus(key) {
	case StatusNew, StatusInProgress, StatusOnHold, StatusResolved, StatusClosed:
		return TicketStatus(key), nil
	}
	return "", fmt.Errorf("unknown status %q", key)
}

// Ticket is the aggregate for support requests. The requester is identified
// by the numeric chat id the transport delivered the request from.
type Ticket struct {
	ID                int64
	ChatID            int64
	RequesterName     string
	RequesterUsername *string
	Category          TicketCategory
	Priority          TicketPriority
	Status            TicketStatus
	Title             string
	Description       string
	Location          *string
	Phone             string
	Assignee          *string
	Solution          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
