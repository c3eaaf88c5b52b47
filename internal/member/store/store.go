package store

import (
	"context"
	"errors"
	"time"

	"github.com/momentree/momentree/internal/member/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for durable domain state. Concrete
// drivers (sqlite today) implement this. Sub-repositories keep concerns tidy
// and let tests substitute a single repo without faking the rest.
type Store interface {
	Members() Members
	Posts() Posts
	Devices() Devices
	FeedItems() FeedItems

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Members interface {
	// GetMemberByID returns a member by internal id.
	GetMemberByID(ctx context.Context, id string) (domain.Member, error)

	// GetMemberByUsername resolves the provider-qualified username used by
	// login and by the authentication middleware.
	GetMemberByUsername(ctx context.Context, username string) (domain.Member, error)

	// CreateMember inserts a new member (id is provided by the app via ULID).
	// A duplicate username returns ErrAlreadyExists.
	CreateMember(ctx context.Context, m domain.Member) error

	// Activate flips status PREACTIVE -> ACTIVE and sets the nickname in one
	// statement. It only matches rows still in PREACTIVE; no row updated
	// returns ErrNotFound so callers can distinguish a lost race.
	Activate(ctx context.Context, memberID, nickname string) error

	// MarkDeleted flips status ACTIVE -> DELETE. The row is kept for
	// historical attribution.
	MarkDeleted(ctx context.Context, memberID string) error
}

type Posts interface {
	CreatePost(ctx context.Context, p domain.Post) error

	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	// ListPosts returns up to limit posts with id < cursor, newest first.
	// An empty cursor starts from the newest post.
	ListPosts(ctx context.Context, cursor string, limit int) ([]domain.Post, error)

	// UpdatePost rewrites title/body/media for an existing post.
	UpdatePost(ctx context.Context, p domain.Post) error

	DeletePost(ctx context.Context, id string) error
}

type Devices interface {
	// RegisterDevice upserts a device token for a member.
	RegisterDevice(ctx context.Context, d domain.Device) error

	// ListDeviceTokens returns every registered token for fan-out.
	ListDeviceTokens(ctx context.Context) ([]string, error)

	// DeleteDevicesOfDeletedMembers prunes registrations whose owner has
	// reached the DELETE state (housekeeping).
	DeleteDevicesOfDeletedMembers(ctx context.Context) (int64, error)
}

type FeedItems interface {
	// UpsertFeedItem inserts an imported item, keyed by its upstream source
	// id. Re-importing the same source id replaces title/summary/link.
	UpsertFeedItem(ctx context.Context, item domain.FeedItem) error

	// ListFeedItems returns up to limit items with id < cursor, newest first.
	ListFeedItems(ctx context.Context, cursor string, limit int) ([]domain.FeedItem, error)

	// DeleteFeedItemsBefore removes items imported before the given cutoff
	// (housekeeping retention).
	DeleteFeedItemsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
