package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/richardwooding/feedly-mcp/feedly"
	"github.com/richardwooding/feedly-mcp/model"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

// closedObject builds an object schema that rejects unrecognized fields.
func closedObject(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Required:             required,
		Properties:           props,
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

func responseFormatSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        []any{"markdown", "json"},
		Default:     json.RawMessage(`"markdown"`),
		Description: "Output format: 'markdown' for human-readable or 'json' for machine-readable",
	}
}

func entryIDsSchema(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Items:       &jsonschema.Schema{Type: "string", MinLength: intp(1)},
		MinItems:    intp(1),
		MaxItems:    intp(maxBatchSize),
		Description: description,
	}
}

func asOfSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Minimum:     floatp(1),
		Description: "Mark only entries older than this timestamp (epoch ms)",
	}
}

func formatOnlySchema() *jsonschema.Schema {
	return closedObject(nil, map[string]*jsonschema.Schema{
		"response_format": responseFormatSchema(),
	})
}

// errorText renders any failure as a single-line "Error: ..." string. Tool
// handlers never surface a protocol-level error to the runtime.
func errorText(err error) string {
	return "Error: " + model.UserMessage(err)
}

// jsonText pretty-prints a payload for JSON-format output.
func jsonText(v any) string {
	text, err := marshalJSON(v)
	if err != nil {
		return errorText(model.NewFeedlyErrorWithCause(model.ErrorTypeInternal, "failed to encode response", err).
			WithOperation("format_response").
			WithComponent("tool_dispatcher"))
	}
	return text
}

// textResult wraps a final string as a tool result, enforcing the global
// output cap on success and error alike.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: truncateResponse(text)}},
	}
}

func (s *Server) handleGetProfile(ctx context.Context, args FormatParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	profile, err := s.reader.Profile(ctx)
	if err != nil {
		return errorText(err)
	}
	if args.Format() == FormatJSON {
		return jsonText(profile)
	}
	return formatProfileMarkdown(profile)
}

func (s *Server) handleGetSubscriptions(ctx context.Context, args FormatParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	subscriptions, err := s.reader.Subscriptions(ctx)
	if err != nil {
		return errorText(err)
	}
	if args.Format() == FormatJSON {
		return jsonText(listEnvelope{Count: len(subscriptions), Items: subscriptions})
	}
	return formatSubscriptionsMarkdown(subscriptions)
}

func (s *Server) handleGetCategories(ctx context.Context, args FormatParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	categories, err := s.reader.Categories(ctx)
	if err != nil {
		return errorText(err)
	}
	if args.Format() == FormatJSON {
		return jsonText(listEnvelope{Count: len(categories), Items: categories})
	}
	return formatCategoriesMarkdown(categories)
}

func (s *Server) handleGetTags(ctx context.Context, args FormatParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	tags, err := s.reader.Tags(ctx)
	if err != nil {
		return errorText(err)
	}
	if args.Format() == FormatJSON {
		return jsonText(listEnvelope{Count: len(tags), Items: tags})
	}
	return formatTagsMarkdown(tags)
}

func (s *Server) handleGetUnreadCounts(ctx context.Context, args FormatParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	counts, err := s.reader.UnreadCounts(ctx)
	if err != nil {
		return errorText(err)
	}
	if args.Format() == FormatJSON {
		return jsonText(listEnvelope{Count: len(counts), Items: counts})
	}
	return formatUnreadCountsMarkdown(counts)
}

func (s *Server) handleGetStreamContents(ctx context.Context, args StreamContentsParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	page, err := s.reader.StreamContents(ctx, feedly.StreamOptions{
		StreamID:     args.StreamID,
		Count:        args.Count,
		UnreadOnly:   args.Unread(),
		Continuation: args.Continuation,
		Ranked:       args.Ranked,
	})
	if err != nil {
		return errorText(err)
	}
	if args.Format() == FormatJSON {
		return jsonText(listEnvelope{Count: len(page.Items), Items: page.Items, Continuation: page.Continuation})
	}
	return formatStreamContentsMarkdown(page)
}

func (s *Server) handleGetEntry(ctx context.Context, args EntryParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	entries, err := s.reader.Entry(ctx, args.EntryID)
	if err != nil {
		return errorText(err)
	}
	if len(entries) == 0 {
		return "Error: Article not found."
	}
	if args.Format() == FormatJSON {
		return jsonText(entries[0])
	}
	return formatEntryMarkdown(&entries[0], true)
}

func (s *Server) handleGetEntries(ctx context.Context, args EntriesParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	entries, err := s.reader.Entries(ctx, args.EntryIDs)
	if err != nil {
		return errorText(err)
	}
	if args.Format() == FormatJSON {
		return jsonText(listEnvelope{Count: len(entries), Items: entries})
	}
	return formatEntriesMarkdown(entries, true)
}

func (s *Server) handleMarkAsRead(ctx context.Context, args MarkAsReadParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	if err := s.marker.MarkEntriesAsRead(ctx, args.EntryIDs); err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Successfully marked %d article(s) as read.", len(args.EntryIDs))
}

func (s *Server) handleMarkFeedAsRead(ctx context.Context, args MarkFeedAsReadParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	if err := s.marker.MarkFeedAsRead(ctx, args.FeedID, args.AsOf); err != nil {
		return errorText(err)
	}
	msg := "Successfully marked feed as read: " + args.FeedID
	if args.AsOf != nil {
		msg += fmt.Sprintf(" (entries before %s)", formatTimestamp(args.AsOf))
	}
	return msg
}

func (s *Server) handleMarkCategoryAsRead(ctx context.Context, args MarkCategoryAsReadParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	if err := s.marker.MarkCategoryAsRead(ctx, args.CategoryID, args.AsOf); err != nil {
		return errorText(err)
	}
	msg := "Successfully marked category as read: " + args.CategoryID
	if args.AsOf != nil {
		msg += fmt.Sprintf(" (entries before %s)", formatTimestamp(args.AsOf))
	}
	return msg
}

func (s *Server) handleKeepUnread(ctx context.Context, args KeepUnreadParams) string {
	if err := args.Validate(); err != nil {
		return errorText(err)
	}
	if err := s.marker.KeepEntriesUnread(ctx, args.EntryIDs); err != nil {
		return errorText(err)
	}
	return fmt.Sprintf("Successfully kept %d article(s) as unread.", len(args.EntryIDs))
}

// addTools registers every Feedly tool on the MCP server. Each handler runs
// validate, one client call, format, in that order; the cap and the error
// boundary are applied uniformly here.
func (s *Server) addTools(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_profile",
		Description: "Get Feedly user profile information including the user ID needed for category and tag stream IDs",
		InputSchema: formatOnlySchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FormatParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetProfile(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_subscriptions",
		Description: "List all feed subscriptions with their IDs, websites, and categories",
		InputSchema: formatOnlySchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FormatParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetSubscriptions(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_categories",
		Description: "List all categories/folders with their stream IDs",
		InputSchema: formatOnlySchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FormatParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetCategories(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_tags",
		Description: "List all tags, including the saved-articles tag",
		InputSchema: formatOnlySchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FormatParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetTags(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_unread_counts",
		Description: "Get unread article counts per stream, sorted by count descending",
		InputSchema: formatOnlySchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FormatParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetUnreadCounts(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_stream_contents",
		Description: "Fetch articles from a Feedly stream (feed, category, or tag), with continuation-token pagination",
		InputSchema: closedObject([]string{"stream_id"}, map[string]*jsonschema.Schema{
			"stream_id": {
				Type:        "string",
				MinLength:   intp(1),
				Description: "Stream ID: 'feed/URL' for feeds, 'user/ID/category/label' for categories, 'user/ID/tag/global.saved' for saved articles",
			},
			"count": {
				Type:        "integer",
				Minimum:     floatp(1),
				Maximum:     floatp(100),
				Default:     json.RawMessage(`20`),
				Description: "Number of articles to return (1-100, default 20)",
			},
			"unread_only": {
				Type:        "boolean",
				Default:     json.RawMessage(`true`),
				Description: "Only return unread articles (default: true)",
			},
			"continuation": {
				Type:        "string",
				Description: "Continuation token for pagination",
			},
			"ranked": {
				Type:        "string",
				Enum:        []any{"newest", "oldest"},
				Default:     json.RawMessage(`"newest"`),
				Description: "Sort order: 'newest' or 'oldest'",
			},
			"response_format": responseFormatSchema(),
		}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StreamContentsParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetStreamContents(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_entry",
		Description: "Get full details for a single article by its entry ID",
		InputSchema: closedObject([]string{"entry_id"}, map[string]*jsonschema.Schema{
			"entry_id": {
				Type:        "string",
				MinLength:   intp(1),
				Description: "Unique entry/article ID",
			},
			"response_format": responseFormatSchema(),
		}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args EntryParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetEntry(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_get_entries",
		Description: "Get full details for multiple articles by their entry IDs (max 1000)",
		InputSchema: closedObject([]string{"entry_ids"}, map[string]*jsonschema.Schema{
			"entry_ids":       entryIDsSchema("List of entry IDs to fetch (max 1000)"),
			"response_format": responseFormatSchema(),
		}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args EntriesParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleGetEntries(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_mark_as_read",
		Description: "Mark articles as read by their entry IDs",
		InputSchema: closedObject([]string{"entry_ids"}, map[string]*jsonschema.Schema{
			"entry_ids": entryIDsSchema("List of entry IDs to mark as read (max 1000)"),
		}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MarkAsReadParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleMarkAsRead(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_mark_feed_as_read",
		Description: "Mark all articles in a feed as read, optionally bounded by an as-of cutoff",
		InputSchema: closedObject([]string{"feed_id"}, map[string]*jsonschema.Schema{
			"feed_id": {
				Type:        "string",
				MinLength:   intp(1),
				Description: "Feed stream ID (format: 'feed/URL')",
			},
			"as_of": asOfSchema(),
		}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MarkFeedAsReadParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleMarkFeedAsRead(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_mark_category_as_read",
		Description: "Mark all articles in a category as read, optionally bounded by an as-of cutoff",
		InputSchema: closedObject([]string{"category_id"}, map[string]*jsonschema.Schema{
			"category_id": {
				Type:        "string",
				MinLength:   intp(1),
				Description: "Category stream ID (format: 'user/ID/category/label')",
			},
			"as_of": asOfSchema(),
		}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MarkCategoryAsReadParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleMarkCategoryAsRead(ctx, args)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "feedly_keep_unread",
		Description: "Keep articles unread (undo mark as read)",
		InputSchema: closedObject([]string{"entry_ids"}, map[string]*jsonschema.Schema{
			"entry_ids": entryIDsSchema("List of entry IDs to keep unread (max 1000)"),
		}),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args KeepUnreadParams) (*mcp.CallToolResult, any, error) {
		return textResult(s.handleKeepUnread(ctx, args)), nil, nil
	})
}
