package message

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultReplyDelay is how long the other party takes to answer.
	DefaultReplyDelay = time.Second
	// AutoReply is the scripted answer to every sent message.
	AutoReply = "That works perfectly! See you Saturday!"
)

// Inbox is a filtered conversation list.
type Inbox struct {
	Conversations []Conversation
	// TotalUnread counts every unread message in the mailbox, whatever
	// the filter.
	TotalUnread int
}

// Service implements the messaging views on top of a Repository.
type Service struct {
	repo       Repository
	replyDelay time.Duration
	now        func() time.Time

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewService creates a service. A zero replyDelay uses DefaultReplyDelay.
func NewService(repo Repository, replyDelay time.Duration) *Service {
	if replyDelay <= 0 {
		replyDelay = DefaultReplyDelay
	}
	return &Service{
		repo:       repo,
		replyDelay: replyDelay,
		now:        time.Now,
		timers:     make(map[*time.Timer]struct{}),
	}
}

// Inbox returns the conversations of mailbox matching c.
func (s *Service) Inbox(ctx context.Context, mailbox string, c Criteria) (Inbox, error) {
	convs, err := s.repo.Conversations(ctx, mailbox)
	if err != nil {
		return Inbox{}, err
	}
	return Inbox{Conversations: c.Apply(convs), TotalUnread: TotalUnread(convs)}, nil
}

// Open returns a conversation and marks it read.
func (s *Service) Open(ctx context.Context, mailbox, id string) (Conversation, error) {
	if err := s.repo.MarkRead(ctx, mailbox, id); err != nil {
		return Conversation{}, err
	}
	return s.repo.Conversation(ctx, mailbox, id)
}

// Send appends text from the user and schedules the other party's reply.
func (s *Service) Send(ctx context.Context, mailbox, id, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return Message{}, ErrClosed
	}

	m := Message{ID: uuid.NewString(), Sender: SenderMe, Text: text, SentAt: s.now()}
	if _, err := s.repo.Append(ctx, mailbox, id, m); err != nil {
		return Message{}, err
	}
	s.scheduleReply(mailbox, id)
	return m, nil
}

// SetArchived moves a conversation in or out of the archive.
func (s *Service) SetArchived(ctx context.Context, mailbox, id string, archived bool) error {
	return s.repo.SetArchived(ctx, mailbox, id, archived)
}

func (s *Service) scheduleReply(mailbox, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(s.replyDelay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		delete(s.timers, t)
		s.mu.Unlock()

		reply := Message{ID: uuid.NewString(), Sender: SenderOther, Text: AutoReply, SentAt: s.now()}
		if _, err := s.repo.Append(context.Background(), mailbox, id, reply); err != nil {
			slog.Warn("auto-reply failed", "conversation", id, "error", err)
		}
	})
	s.timers[t] = struct{}{}
}

// Close cancels pending replies and waits for running ones to finish.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	for t := range s.timers {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.timers, t)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
