// Package message provides conversations between a signed-in user and the
// people they contact about listings, with a scripted auto-reply.
package message

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned for an unknown conversation id.
	ErrNotFound = errors.New("conversation not found")
	// ErrEmptyMessage is returned when sending blank text.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrClosed is returned by Send after the service is closed.
	ErrClosed = errors.New("message service closed")
)

// Sender is the side of the conversation that wrote a message.
type Sender string

const (
	SenderMe    Sender = "me"
	SenderOther Sender = "other"
)

// Party is the other participant of a conversation.
type Party struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Verified  bool   `json:"verified"`
}

// PropertyRef points at the listing a conversation is about.
type PropertyRef struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Price    int    `json:"price,omitempty"`
}

// Message is one chat line.
type Message struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Conversation is a thread with one other party.
type Conversation struct {
	ID            string      `json:"id"`
	Other         Party       `json:"other"`
	Property      PropertyRef `json:"property"`
	LastMessage   string      `json:"last_message"`
	LastMessageAt time.Time   `json:"last_message_at"`
	Unread        int         `json:"unread"`
	Archived      bool        `json:"archived"`
	Messages      []Message   `json:"messages,omitempty"`
}

func (c Conversation) clone() Conversation {
	c.Messages = append([]Message(nil), c.Messages...)
	return c
}

func (c *Conversation) append(m Message) {
	c.Messages = append(c.Messages, m)
	c.LastMessage = m.Text
	c.LastMessageAt = m.SentAt
	if m.Sender == SenderOther {
		c.Unread++
	}
}
