package mcpserver

import (
	"strings"

	"github.com/richardwooding/feedly-mcp/model"
)

// ResponseFormat selects between human-readable and machine-readable output.
type ResponseFormat string

const (
	// FormatMarkdown renders hand-formatted markdown (the default)
	FormatMarkdown ResponseFormat = "markdown"
	// FormatJSON renders pretty-printed JSON
	FormatJSON ResponseFormat = "json"
)

const maxBatchSize = 1000

// validationError builds a caller-visible malformed-input error. Validation
// failures never reach the network.
func validationError(message string) error {
	return model.NewFeedlyError(model.ErrorTypeValidation, message).
		WithOperation("validate_input").
		WithComponent("tool_dispatcher")
}

func validateFormat(format string) error {
	switch format {
	case "", string(FormatMarkdown), string(FormatJSON):
		return nil
	default:
		return validationError("response_format must be 'markdown' or 'json'")
	}
}

func validateEntryIDs(ids []string) error {
	if len(ids) == 0 {
		return validationError("entry_ids must contain at least 1 entry ID")
	}
	if len(ids) > maxBatchSize {
		return validationError("entry_ids must contain at most 1000 entry IDs")
	}
	for _, id := range ids {
		if id == "" {
			return validationError("entry_ids must not contain empty IDs")
		}
	}
	return nil
}

func parseFormat(format string) ResponseFormat {
	if format == string(FormatJSON) {
		return FormatJSON
	}
	return FormatMarkdown
}

// FormatParams is the input for tools that only take an output format.
type FormatParams struct {
	ResponseFormat string `json:"response_format,omitempty"`
}

// Validate checks the parameters against their schema bounds.
func (p *FormatParams) Validate() error {
	return validateFormat(p.ResponseFormat)
}

// Format returns the requested output format, defaulting to markdown.
func (p *FormatParams) Format() ResponseFormat {
	return parseFormat(p.ResponseFormat)
}

// StreamContentsParams is the input for feedly_get_stream_contents.
type StreamContentsParams struct {
	StreamID       string `json:"stream_id"`
	Count          int    `json:"count,omitempty"`
	UnreadOnly     *bool  `json:"unread_only,omitempty"`
	Continuation   string `json:"continuation,omitempty"`
	Ranked         string `json:"ranked,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// Validate checks the parameters against their schema bounds.
func (p *StreamContentsParams) Validate() error {
	if strings.TrimSpace(p.StreamID) == "" {
		return validationError("stream_id is required")
	}
	if p.Count < 0 || p.Count > 100 {
		return validationError("count must be between 1 and 100")
	}
	switch p.Ranked {
	case "", "newest", "oldest":
	default:
		return validationError("ranked must be 'newest' or 'oldest'")
	}
	return validateFormat(p.ResponseFormat)
}

// Format returns the requested output format, defaulting to markdown.
func (p *StreamContentsParams) Format() ResponseFormat {
	return parseFormat(p.ResponseFormat)
}

// Unread reports whether only unread articles are requested (default true).
func (p *StreamContentsParams) Unread() bool {
	return p.UnreadOnly == nil || *p.UnreadOnly
}

// EntryParams is the input for feedly_get_entry.
type EntryParams struct {
	EntryID        string `json:"entry_id"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// Validate checks the parameters against their schema bounds.
func (p *EntryParams) Validate() error {
	if p.EntryID == "" {
		return validationError("entry_id is required")
	}
	return validateFormat(p.ResponseFormat)
}

// Format returns the requested output format, defaulting to markdown.
func (p *EntryParams) Format() ResponseFormat {
	return parseFormat(p.ResponseFormat)
}

// EntriesParams is the input for feedly_get_entries.
type EntriesParams struct {
	EntryIDs       []string `json:"entry_ids"`
	ResponseFormat string   `json:"response_format,omitempty"`
}

// Validate checks the parameters against their schema bounds.
func (p *EntriesParams) Validate() error {
	if err := validateEntryIDs(p.EntryIDs); err != nil {
		return err
	}
	return validateFormat(p.ResponseFormat)
}

// Format returns the requested output format, defaulting to markdown.
func (p *EntriesParams) Format() ResponseFormat {
	return parseFormat(p.ResponseFormat)
}

// MarkAsReadParams is the input for feedly_mark_as_read.
type MarkAsReadParams struct {
	EntryIDs []string `json:"entry_ids"`
}

// Validate checks the parameters against their schema bounds.
func (p *MarkAsReadParams) Validate() error {
	return validateEntryIDs(p.EntryIDs)
}

// MarkFeedAsReadParams is the input for feedly_mark_feed_as_read.
type MarkFeedAsReadParams struct {
	FeedID string `json:"feed_id"`
	AsOf   *int64 `json:"as_of,omitempty"`
}

// Validate checks the parameters against their schema bounds.
func (p *MarkFeedAsReadParams) Validate() error {
	if p.FeedID == "" {
		return validationError("feed_id is required")
	}
	if p.AsOf != nil && *p.AsOf <= 0 {
		return validationError("as_of must be a positive epoch-milliseconds timestamp")
	}
	return nil
}

// MarkCategoryAsReadParams is the input for feedly_mark_category_as_read.
type MarkCategoryAsReadParams struct {
	CategoryID string `json:"category_id"`
	AsOf       *int64 `json:"as_of,omitempty"`
}

// Validate checks the parameters against their schema bounds.
func (p *MarkCategoryAsReadParams) Validate() error {
	if p.CategoryID == "" {
		return validationError("category_id is required")
	}
	if p.AsOf != nil && *p.AsOf <= 0 {
		return validationError("as_of must be a positive epoch-milliseconds timestamp")
	}
	return nil
}

// KeepUnreadParams is the input for feedly_keep_unread.
type KeepUnreadParams struct {
	EntryIDs []string `json:"entry_ids"`
}

// Validate checks the parameters against their schema bounds.
func (p *KeepUnreadParams) Validate() error {
	return validateEntryIDs(p.EntryIDs)
}
