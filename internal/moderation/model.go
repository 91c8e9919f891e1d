// Package moderation backs the admin console: verification requests,
// reported listings and platform statistics.
package moderation

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned for an unknown request or report id.
	ErrNotFound = errors.New("not found")
	// ErrNotPending is returned when deciding a request that was already
	// decided.
	ErrNotPending = errors.New("request already decided")
)

// Status is the state of a verification request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Subject is what a verification request is about.
type Subject string

const (
	SubjectUser    Subject = "user"
	SubjectListing Subject = "listing"
)

// Request asks an admin to verify a user or a listing.
type Request struct {
	ID          int64     `json:"id"`
	Subject     Subject   `json:"type"`
	Name        string    `json:"name"`
	SubmittedOn time.Time `json:"submitted_on"`
	Status      Status    `json:"status"`
	Tier        string    `json:"tier,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// FlaggedListing is a listing reported by users.
type FlaggedListing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	ReportCount int       `json:"report_count"`
	Reason      string    `json:"reason"`
	ReportedOn  time.Time `json:"reported_on"`
}

// Stats are the headline numbers of the admin dashboard.
type Stats struct {
	TotalUsers           int `json:"total_users"`
	VerifiedUsers        int `json:"verified_users"`
	TotalListings        int `json:"total_listings"`
	PendingVerifications int `json:"pending_verifications"`
	FlaggedItems         int `json:"flagged_items"`
}

// ListingStats are shown on the analytics tab.
type ListingStats struct {
	Active        int
	PendingReview int
	Archived      int
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixtureRequests returns the demo verification queue.
func FixtureRequests() []Request {
	return []Request{
		{ID: 1, Subject: SubjectUser, Name: "Maria Santos", SubmittedOn: day(2024, time.January, 15), Status: StatusPending, Tier: "Premium"},
		{ID: 2, Subject: SubjectUser, Name: "John Cruz", SubmittedOn: day(2024, time.January, 16), Status: StatusPending, Tier: "Basic"},
		{ID: 3, Subject: SubjectListing, Name: "Cozy Room near UP Diliman", SubmittedOn: day(2024, time.January, 14), Status: StatusApproved},
		{ID: 4, Subject: SubjectListing, Name: "2 Rooms in Share House", SubmittedOn: day(2024, time.January, 10), Status: StatusApproved},
		{ID: 5, Subject: SubjectUser, Name: "Alex Rivera", SubmittedOn: day(2024, time.January, 17), Status: StatusPending, Tier: "Basic"},
		{ID: 6, Subject: SubjectListing, Name: "Studio Apartment Ortigas", SubmittedOn: day(2024, time.January, 13), Status: StatusRejected, Reason: "Images quality too low"},
	}
}

// FixtureFlagged returns the demo report queue.
func FixtureFlagged() []FlaggedListing {
	return []FlaggedListing{
		{ID: 1, Title: "Suspicious Property Listing", Location: "Unknown", ReportCount: 5, Reason: "Possibly scam", ReportedOn: day(2024, time.January, 18)},
		{ID: 2, Title: "Inappropriate Content", Location: "Makati", ReportCount: 3, Reason: "Offensive description", ReportedOn: day(2024, time.January, 17)},
		{ID: 3, Title: "Duplicate Listing", Location: "BGC", ReportCount: 2, Reason: "Same property listed twice", ReportedOn: day(2024, time.January, 16)},
	}
}

// FixtureStats returns the platform-wide counters that are not derived
// from the request queue.
func FixtureStats() Stats {
	return Stats{TotalUsers: 1243, VerifiedUsers: 987, TotalListings: 456, FlaggedItems: 12}
}

// FixtureListingStats returns the analytics tab counters.
func FixtureListingStats() ListingStats {
	return ListingStats{Active: 398, PendingReview: 28, Archived: 30}
}
