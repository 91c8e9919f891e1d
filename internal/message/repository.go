package message

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Repository stores conversations per mailbox. A mailbox is the account
// id of the user who owns the inbox.
type Repository interface {
	Conversations(ctx context.Context, mailbox string) ([]Conversation, error)
	Conversation(ctx context.Context, mailbox, id string) (Conversation, error)
	Append(ctx context.Context, mailbox, id string, m Message) (Conversation, error)
	MarkRead(ctx context.Context, mailbox, id string) error
	SetArchived(ctx context.Context, mailbox, id string, archived bool) error
}

// MemoryRepository keeps mailboxes in memory. A mailbox is seeded from
// the fixtures the first time it is read.
type MemoryRepository struct {
	mu        sync.RWMutex
	mailboxes map[string][]*Conversation
	seed      func(now time.Time) []Conversation
	now       func() time.Time
}

// NewMemoryRepository creates a repository whose mailboxes start with the
// demo conversations.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		mailboxes: make(map[string][]*Conversation),
		seed:      Fixtures,
		now:       time.Now,
	}
}

func (r *MemoryRepository) mailbox(name string) []*Conversation {
	if convs, ok := r.mailboxes[name]; ok {
		return convs
	}
	var convs []*Conversation
	for _, c := range r.seed(r.now()) {
		c := c.clone()
		convs = append(convs, &c)
	}
	r.mailboxes[name] = convs
	return convs
}

func (r *MemoryRepository) find(mailbox, id string) (*Conversation, error) {
	for _, c := range r.mailbox(mailbox) {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("conversation %q: %w", id, ErrNotFound)
}

// Conversations implements Repository.
func (r *MemoryRepository) Conversations(_ context.Context, mailbox string) ([]Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	convs := r.mailbox(mailbox)
	out := make([]Conversation, len(convs))
	for i, c := range convs {
		out[i] = c.clone()
	}
	return out, nil
}

// Conversation implements Repository.
func (r *MemoryRepository) Conversation(_ context.Context, mailbox, id string) (Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.find(mailbox, id)
	if err != nil {
		return Conversation{}, err
	}
	return c.clone(), nil
}

// Append implements Repository.
func (r *MemoryRepository) Append(_ context.Context, mailbox, id string, m Message) (Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.find(mailbox, id)
	if err != nil {
		return Conversation{}, err
	}
	c.append(m)
	return c.clone(), nil
}

// MarkRead implements Repository.
func (r *MemoryRepository) MarkRead(_ context.Context, mailbox, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.find(mailbox, id)
	if err != nil {
		return err
	}
	c.Unread = 0
	return nil
}

// SetArchived implements Repository.
func (r *MemoryRepository) SetArchived(_ context.Context, mailbox, id string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.find(mailbox, id)
	if err != nil {
		return err
	}
	c.Archived = archived
	return nil
}
