package message

import (
	"strconv"
	"time"

	"github.com/evcraddock/kwartayo/internal/listing"
)

// Fixtures returns the demo inbox with times relative to now.
func Fixtures(now time.Time) []Conversation {
	maria := Party{ID: "owner1", Name: "Maria Santos", AvatarURL: listing.AvatarMaria, Verified: true}
	at := func(d time.Duration) time.Time { return now.Add(-d) }

	chat := []struct {
		sender Sender
		text   string
		ago    time.Duration
	}{
		{SenderOther, "Hi! Thanks for your interest in the room.", 2*time.Hour + 15*time.Minute},
		{SenderMe, "Hi Maria! Is the room still available?", 2*time.Hour + 10*time.Minute},
		{SenderOther, "Yes, it is! The room is available from next month.", 2*time.Hour + 5*time.Minute},
		{SenderOther, "Would you like to schedule a viewing? I can show it to you this weekend.", 2*time.Hour + 4*time.Minute},
		{SenderMe, "That sounds great! Saturday afternoon works for me.", 2 * time.Hour},
	}
	var first []Message
	for i, c := range chat {
		first = append(first, Message{ID: strconv.Itoa(i + 1), Sender: c.sender, Text: c.text, SentAt: at(c.ago)})
	}

	return []Conversation{
		{
			ID:            "1",
			Other:         maria,
			Property:      PropertyRef{ID: 1, Title: "Cozy Room near UP Diliman", Location: "Quezon City", Price: 8500},
			LastMessage:   "The room is available from next month. Would you like to schedule a viewing?",
			LastMessageAt: at(2 * time.Hour),
			Unread:        1,
			Messages:      first,
		},
		{
			ID:            "2",
			Other:         Party{ID: "owner2", Name: "John Cruz", AvatarURL: listing.AvatarJohn, Verified: true},
			Property:      PropertyRef{ID: 2, Title: "2 Rooms in Share House", Location: "Makati", Price: 7500},
			LastMessage:   "Thanks for your interest. The lease term is flexible.",
			LastMessageAt: at(5 * time.Hour),
			Messages: []Message{
				{ID: "1", Sender: SenderOther, Text: "Thanks for your interest. The lease term is flexible.", SentAt: at(5 * time.Hour)},
			},
		},
		{
			ID:            "3",
			Other:         Party{ID: "seeker1", Name: "Juan Dela Cruz", AvatarURL: listing.AvatarJohn},
			Property:      PropertyRef{ID: 3, Title: "Whole Property for Rent", Location: "Muntinlupa", Price: 12000},
			LastMessage:   "Hi, is the room still available?",
			LastMessageAt: at(24 * time.Hour),
			Unread:        2,
			Messages: []Message{
				{ID: "1", Sender: SenderOther, Text: "Hello! I saw your listing.", SentAt: at(24*time.Hour + time.Minute)},
				{ID: "2", Sender: SenderOther, Text: "Hi, is the room still available?", SentAt: at(24 * time.Hour)},
			},
		},
		{
			ID:            "4",
			Other:         Party{ID: "owner3", Name: "Ana Garcia", AvatarURL: listing.AvatarAna, Verified: true},
			Property:      PropertyRef{ID: 4, Title: "Studio Apartment Ortigas", Location: "Pasig", Price: 9500},
			LastMessage:   "Perfect! I can arrange a viewing this weekend.",
			LastMessageAt: at(72 * time.Hour),
			Messages: []Message{
				{ID: "1", Sender: SenderMe, Text: "Is a viewing possible this weekend?", SentAt: at(72*time.Hour + 30*time.Minute)},
				{ID: "2", Sender: SenderOther, Text: "Perfect! I can arrange a viewing this weekend.", SentAt: at(72 * time.Hour)},
			},
		},
	}
}
