package domain

import "time"

// Post is a member-authored content record.
type Post struct {
	ID        string
	AuthorID  string
	Title     string
	Body      string
	MediaURL  string // optional uploaded attachment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeedItem is a row imported from the external data feed.
type FeedItem struct {
	ID          string
	SourceID    string // dedupe key from the upstream feed
	Title       string
	Summary     string
	Link        string
	PublishedAt time.Time
	ImportedAt  time.Time
}

// Device is a push-notification registration for a member.
type Device struct {
	ID        string
	MemberID  string
	Token     string // push gateway device token
	Platform  string // "ios", "android", "web"
	CreatedAt time.Time
}
