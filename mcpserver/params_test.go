package mcpserver

import (
	"strings"
	"testing"

	"github.com/richardwooding/feedly-mcp/model"
)

func manyIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "entry"
	}
	return ids
}

func assertValidation(t *testing.T, err error, wantMsg string) {
	t.Helper()
	if wantMsg == "" {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected validation error containing %q, got nil", wantMsg)
	}
	if !model.IsErrorType(err, model.ErrorTypeValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
	if !strings.Contains(model.UserMessage(err), wantMsg) {
		t.Errorf("expected message containing %q, got %q", wantMsg, model.UserMessage(err))
	}
}

func TestFormatParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantMsg string
	}{
		{"default", "", ""},
		{"markdown", "markdown", ""},
		{"json", "json", ""},
		{"bogus", "xml", "response_format must be 'markdown' or 'json'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FormatParams{ResponseFormat: tt.format}
			assertValidation(t, p.Validate(), tt.wantMsg)
		})
	}
}

func TestFormatParams_Format(t *testing.T) {
	if (&FormatParams{}).Format() != FormatMarkdown {
		t.Error("expected markdown default")
	}
	if (&FormatParams{ResponseFormat: "json"}).Format() != FormatJSON {
		t.Error("expected json when requested")
	}
}

func TestStreamContentsParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  StreamContentsParams
		wantMsg string
	}{
		{"valid minimal", StreamContentsParams{StreamID: "feed/x"}, ""},
		{"valid full", StreamContentsParams{StreamID: "feed/x", Count: 100, Ranked: "oldest", ResponseFormat: "json"}, ""},
		{"missing stream", StreamContentsParams{}, "stream_id is required"},
		{"blank stream", StreamContentsParams{StreamID: "   "}, "stream_id is required"},
		{"count too high", StreamContentsParams{StreamID: "feed/x", Count: 101}, "count must be between 1 and 100"},
		{"count negative", StreamContentsParams{StreamID: "feed/x", Count: -1}, "count must be between 1 and 100"},
		{"bad ranked", StreamContentsParams{StreamID: "feed/x", Ranked: "shuffled"}, "ranked must be 'newest' or 'oldest'"},
		{"bad format", StreamContentsParams{StreamID: "feed/x", ResponseFormat: "yaml"}, "response_format must be 'markdown' or 'json'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, tt.params.Validate(), tt.wantMsg)
		})
	}
}

func TestStreamContentsParams_Unread(t *testing.T) {
	if !(&StreamContentsParams{}).Unread() {
		t.Error("expected unread-only to default to true")
	}
	yes, no := true, false
	if !(&StreamContentsParams{UnreadOnly: &yes}).Unread() {
		t.Error("expected explicit true to stick")
	}
	if (&StreamContentsParams{UnreadOnly: &no}).Unread() {
		t.Error("expected explicit false to stick")
	}
}

func TestEntryParams_Validate(t *testing.T) {
	assertValidation(t, (&EntryParams{EntryID: "e1"}).Validate(), "")
	assertValidation(t, (&EntryParams{}).Validate(), "entry_id is required")
	assertValidation(t, (&EntryParams{EntryID: "e1", ResponseFormat: "csv"}).Validate(), "response_format")
}

func TestEntriesParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  EntriesParams
		wantMsg string
	}{
		{"valid", EntriesParams{EntryIDs: []string{"e1", "e2"}}, ""},
		{"at batch limit", EntriesParams{EntryIDs: manyIDs(1000)}, ""},
		{"empty", EntriesParams{}, "entry_ids must contain at least 1 entry ID"},
		{"over batch limit", EntriesParams{EntryIDs: manyIDs(1001)}, "entry_ids must contain at most 1000 entry IDs"},
		{"empty element", EntriesParams{EntryIDs: []string{"e1", ""}}, "entry_ids must not contain empty IDs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, tt.params.Validate(), tt.wantMsg)
		})
	}
}

func TestMarkAsReadParams_Validate(t *testing.T) {
	assertValidation(t, (&MarkAsReadParams{EntryIDs: []string{"e1"}}).Validate(), "")
	assertValidation(t, (&MarkAsReadParams{}).Validate(), "at least 1 entry ID")
	assertValidation(t, (&MarkAsReadParams{EntryIDs: manyIDs(1001)}).Validate(), "at most 1000")
}

func TestMarkFeedAsReadParams_Validate(t *testing.T) {
	past := int64(1704067200000)
	zero := int64(0)
	negative := int64(-5)

	tests := []struct {
		name    string
		params  MarkFeedAsReadParams
		wantMsg string
	}{
		{"valid without cutoff", MarkFeedAsReadParams{FeedID: "feed/x"}, ""},
		{"valid with cutoff", MarkFeedAsReadParams{FeedID: "feed/x", AsOf: &past}, ""},
		{"missing feed", MarkFeedAsReadParams{}, "feed_id is required"},
		{"zero cutoff", MarkFeedAsReadParams{FeedID: "feed/x", AsOf: &zero}, "as_of must be a positive"},
		{"negative cutoff", MarkFeedAsReadParams{FeedID: "feed/x", AsOf: &negative}, "as_of must be a positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, tt.params.Validate(), tt.wantMsg)
		})
	}
}

func TestMarkCategoryAsReadParams_Validate(t *testing.T) {
	zero := int64(0)
	assertValidation(t, (&MarkCategoryAsReadParams{CategoryID: "user/1/category/Tech"}).Validate(), "")
	assertValidation(t, (&MarkCategoryAsReadParams{}).Validate(), "category_id is required")
	assertValidation(t, (&MarkCategoryAsReadParams{CategoryID: "user/1/category/Tech", AsOf: &zero}).Validate(), "as_of must be a positive")
}

func TestKeepUnreadParams_Validate(t *testing.T) {
	assertValidation(t, (&KeepUnreadParams{EntryIDs: []string{"e1"}}).Validate(), "")
	assertValidation(t, (&KeepUnreadParams{EntryIDs: []string{""}}).Validate(), "must not contain empty IDs")
}
