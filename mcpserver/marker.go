package mcpserver

import "context"

// MarkerWriter provides the read-state mutations exposed as tools.
type MarkerWriter interface {
	MarkEntriesAsRead(ctx context.Context, entryIDs []string) error
	MarkFeedAsRead(ctx context.Context, feedID string, asOf *int64) error
	MarkCategoryAsRead(ctx context.Context, categoryID string, asOf *int64) error
	KeepEntriesUnread(ctx context.Context, entryIDs []string) error
}
