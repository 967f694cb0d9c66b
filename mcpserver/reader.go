package mcpserver

import (
	"context"

	"github.com/richardwooding/feedly-mcp/feedly"
)

// StreamReader provides the read-only Feedly operations exposed as tools.
type StreamReader interface {
	Profile(ctx context.Context) (*feedly.Profile, error)
	Subscriptions(ctx context.Context) ([]feedly.Subscription, error)
	Categories(ctx context.Context) ([]feedly.Category, error)
	Tags(ctx context.Context) ([]feedly.Tag, error)
	UnreadCounts(ctx context.Context) ([]feedly.UnreadCount, error)
	StreamContents(ctx context.Context, opts feedly.StreamOptions) (*feedly.StreamPage, error)
	Entry(ctx context.Context, entryID string) ([]feedly.Entry, error)
	Entries(ctx context.Context, entryIDs []string) ([]feedly.Entry, error)
}
