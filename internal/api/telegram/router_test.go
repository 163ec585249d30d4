package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-bot/internal/auth"
	"github.com/spec-kit/helpdesk-bot/internal/domain"
	"github.com/spec-kit/helpdesk-bot/internal/events"
	"github.com/spec-kit/helpdesk-bot/internal/messaging"
	"github.com/spec-kit/helpdesk-bot/internal/observability"
	"github.com/spec-kit/helpdesk-bot/internal/repository"
	"github.com/spec-kit/helpdesk-bot/internal/service"
	"github.com/spec-kit/helpdesk-bot/internal/session"
)

// Shared fakes for the handler tests: an in-memory session store, a
// recording messenger and an in-memory ticket repository.

type memStore struct {
	mu      sync.Mutex
	drafts  map[int64]session.Draft
	pending map[int64]int64
}

func newMemStore() *memStore {
	return &memStore{drafts: make(map[int64]session.Draft), pending: make(map[int64]int64)}
}

func (s *memStore) GetDraft(ctx context.Context, chatID int64) (*session.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[chatID]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

func (s *memStore) PutDraft(ctx context.Context, chatID int64, draft *session.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[chatID] = *draft
	return nil
}

func (s *memStore) DeleteDraft(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, chatID)
	return nil
}

func (s *memStore) ArmSolution(ctx context.Context, chatID, ticketID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = ticketID
	return nil
}

func (s *memStore) PendingSolution(ctx context.Context, chatID int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticketID, ok := s.pending[chatID]
	return ticketID, ok, nil
}

func (s *memStore) DisarmSolution(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
	return nil
}

type sentMessage struct {
	ChatID   int64
	Text     string
	Keyboard messaging.Keyboard
}

type editedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
	Keyboard  messaging.Keyboard
}

type recordingMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	edited  []editedMessage
	answers []string
}

func (m *recordingMessenger) Send(ctx context.Context, msg messaging.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{ChatID: msg.ChatID, Text: msg.Text, Keyboard: msg.Keyboard})
	return nil
}

func (m *recordingMessenger) Edit(ctx context.Context, chatID int64, messageID int, text string, keyboard messaging.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edited = append(m.edited, editedMessage{ChatID: chatID, MessageID: messageID, Text: text, Keyboard: keyboard})
	return nil
}

func (m *recordingMessenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, text)
	return nil
}

func (m *recordingMessenger) sentTo(chatID int64) []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMessage
	for _, msg := range m.sent {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out
}

func (m *recordingMessenger) lastTo(chatID int64) *sentMessage {
	msgs := m.sentTo(chatID)
	if len(msgs) == 0 {
		return nil
	}
	return &msgs[len(msgs)-1]
}

type memTicketRepo struct {
	mu      sync.Mutex
	nextID  int64
	tickets map[int64]domain.Ticket
	updates int
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: make(map[int64]domain.Ticket)}
}

func (r *memTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ticket.ID = r.nextID
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = stored.UpdatedAt.Add(time.Second)
	r.tickets[ticket.ID] = *ticket
	r.updates++
	return nil
}

func (r *memTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *memTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.ChatID != nil && ticket.ChatID != *filter.ChatID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if ticket.Status == status {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, ticket)
	}
	return out, nil
}

func (r *memTicketRepo) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.TicketStatus]int64)
	for _, ticket := range r.tickets {
		counts[ticket.Status]++
	}
	return counts, nil
}

const (
	testAdminID  int64 = 1000
	testOtherID  int64 = 9999
	requesterID  int64 = 555
	requesterTag       = "alice"
)

type testBot struct {
	handler   *Handler
	repo      *memTicketRepo
	store     *memStore
	messenger *recordingMessenger
}

func newTestBot() *testBot {
	repo := newMemTicketRepo()
	store := newMemStore()
	messenger := &recordingMessenger{}
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	admins := auth.NewAdminSet([]int64{testAdminID})
	dispatcher := events.NewInMemoryDispatcher()

	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repo,
		Admins:     admins,
		Dispatcher: dispatcher,
	})
	service.NewNotificationService(dispatcher, messenger, admins, logger, metrics).RegisterHandlers()

	handler := NewHandler(HandlerDependencies{
		TicketService: svc,
		Sessions:      store,
		Admins:        admins,
		Messenger:     messenger,
		Logger:        logger,
		Metrics:       metrics,
	})
	return &testBot{handler: handler, repo: repo, store: store, messenger: messenger}
}

func userCommand(chatID int64, command string) messaging.Update {
	return messaging.Update{
		ChatID:  chatID,
		From:    messaging.Sender{Name: "Alice", Username: requesterTag},
		Command: command,
	}
}

func userText(chatID int64, text string) messaging.Update {
	return messaging.Update{
		ChatID: chatID,
		From:   messaging.Sender{Name: "Alice", Username: requesterTag},
		Text:   text,
	}
}

func textFrom(chatID int64, name, text string) messaging.Update {
	return messaging.Update{
		ChatID: chatID,
		From:   messaging.Sender{Name: name},
		Text:   text,
	}
}

func callbackFrom(chatID int64, name, data string) messaging.Update {
	return messaging.Update{
		ChatID:   chatID,
		From:     messaging.Sender{Name: name},
		Callback: &messaging.Callback{ID: "cb", Data: data, MessageID: 5},
	}
}
