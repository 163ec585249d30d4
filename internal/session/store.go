// Package session holds the per-chat conversation scratch state: the
// creation wizard draft and the awaiting-solution marker for admins.
// All of it is transient and TTL-bounded; nothing here survives a
// confirmed or cancelled conversation.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
)

// Step identifies the wizard prompt a draft is waiting on.
type Step string

const (
	StepCategory    Step = "category"
	StepPriority    Step = "priority"
	StepTitle       Step = "title"
	StepDescription Step = "description"
	StepLocation    Step = "location"
	StepPhone       Step = "phone"
	StepConfirm     Step = "confirm"
)

// Draft accumulates wizard answers for one chat.
type Draft struct {
	Step              Step                  `json:"step"`
	RequesterName     string                `json:"requester_name"`
	RequesterUsername string                `json:"requester_username,omitempty"`
	Category          domain.TicketCategory `json:"category,omitempty"`
	Priority          domain.TicketPriority `json:"priority,omitempty"`
	Title             string                `json:"title,omitempty"`
	Description       string                `json:"description,omitempty"`
	Location          string                `json:"location,omitempty"`
	Phone             string                `json:"phone,omitempty"`
}

// Store persists conversation scratch state keyed by chat id.
type Store interface {
	GetDraft(ctx context.Context, chatID int64) (*Draft, error)
	PutDraft(ctx context.Context, chatID int64, draft *Draft) error
	DeleteDraft(ctx context.Context, chatID int64) error

	ArmSolution(ctx context.Context, chatID, ticketID int64) error
	PendingSolution(ctx context.Context, chatID int64) (int64, bool, error)
	DisarmSolution(ctx context.Context, chatID int64) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Store backed by Redis with the given scratch TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl}
}

func draftKey(chatID int64) string {
	return fmt.Sprintf("helpdesk:draft:%d", chatID)
}

func solutionKey(chatID int64) string {
	return fmt.Sprintf("helpdesk:solution:%d", chatID)
}

func (s *redisStore) GetDraft(ctx context.Context, chatID int64) (*Draft, error) {
	raw, err := s.client.Get(ctx, draftKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *redisStore) PutDraft(ctx context.Context, chatID int64, draft *Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftKey(chatID), raw, s.ttl).Err()
}

func (s *redisStore) DeleteDraft(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, draftKey(chatID)).Err()
}

func (s *redisStore) ArmSolution(ctx context.Context, chatID, ticketID int64) error {
	return s.client.Set(ctx, solutionKey(chatID), ticketID, s.ttl).Err()
}

func (s *redisStore) PendingSolution(ctx context.Context, chatID int64) (int64, bool, error) {
	ticketID, err := s.client.Get(ctx, solutionKey(chatID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return ticketID, true, nil
}

func (s *redisStore) DisarmSolution(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, solutionKey(chatID)).Err()
}
