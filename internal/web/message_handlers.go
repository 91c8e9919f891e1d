package web

import (
	"errors"
	"net/http"

	"github.com/evcraddock/kwartayo/internal/message"
)

type messagesData struct {
	page
	Criteria message.Criteria
	Views    []message.View
	Inbox    message.Inbox
}

// handleMessages renders the filtered conversation list.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Messages", "messages")
	q := r.URL.Query()
	criteria := message.Criteria{View: message.ParseView(q.Get("view")), Query: q.Get("q")}

	inbox, err := s.messages.Inbox(r.Context(), p.User.ID, criteria)
	if err != nil {
		s.serverError(w, "loading conversations", err)
		return
	}

	s.render(w, "messages.html", messagesData{
		page:     p,
		Criteria: criteria,
		Views:    message.Views,
		Inbox:    inbox,
	})
}

type conversationData struct {
	page
	Conversation message.Conversation
	Error        string
}

// handleConversation renders a chat and marks it read.
func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Messages", "messages")
	conv, err := s.messages.Open(r.Context(), p.User.ID, r.PathValue("id"))
	if errors.Is(err, message.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "loading conversation", err)
		return
	}

	p.Title = conv.Other.Name
	s.render(w, "conversation.html", conversationData{page: p, Conversation: conv})
}

// handleSendMessage appends the user's message; the other party answers
// after the service's reply delay.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Messages", "messages")
	id := r.PathValue("id")

	_, err := s.messages.Send(r.Context(), p.User.ID, id, r.FormValue("text"))
	switch {
	case errors.Is(err, message.ErrNotFound):
		s.notFound(w, r)
		return
	case errors.Is(err, message.ErrEmptyMessage):
		conv, openErr := s.messages.Open(r.Context(), p.User.ID, id)
		if openErr != nil {
			s.serverError(w, "loading conversation", openErr)
			return
		}
		p.Title = conv.Other.Name
		s.render(w, "conversation.html", conversationData{page: p, Conversation: conv, Error: "Message cannot be empty"})
		return
	case err != nil:
		s.serverError(w, "sending message", err)
		return
	}

	s.metrics.MessageSent()
	http.Redirect(w, r, "/messages/"+id, http.StatusSeeOther)
}

// handleArchive moves a conversation in or out of the archive.
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Messages", "messages")
	archived := r.FormValue("archived") != "false"

	err := s.messages.SetArchived(r.Context(), p.User.ID, r.PathValue("id"), archived)
	if errors.Is(err, message.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "archiving conversation", err)
		return
	}

	view := message.ViewAll
	if archived {
		view = message.ViewArchived
	}
	http.Redirect(w, r, "/messages?view="+string(view), http.StatusSeeOther)
}
