package mcpserver

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/richardwooding/feedly-mcp/feedly"
)

func int64p(v int64) *int64 { return &v }

func strp(s string) *string { return &s }

func TestFormatTimestamp(t *testing.T) {
	ts := int64(1704067200000)
	want := time.UnixMilli(ts).Format("2006-01-02 15:04")

	tests := []struct {
		name string
		ms   *int64
		want string
	}{
		{"absent", nil, "Unknown"},
		{"known value", int64p(ts), want},
		{"unrepresentable positive", int64p(math.MaxInt64), "Unknown"},
		{"unrepresentable negative", int64p(math.MinInt64), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTimestamp(tt.ms); got != tt.want {
				t.Errorf("formatTimestamp(%v) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	exact := strings.Repeat("a", summaryLength)
	if got := truncateText(exact, summaryLength); got != exact {
		t.Error("text at the limit must pass through unchanged")
	}

	long := strings.Repeat("b", summaryLength+1)
	got := truncateText(long, summaryLength)
	if len([]rune(got)) != summaryLength {
		t.Errorf("expected %d characters, got %d", summaryLength, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}
	if got[:summaryLength-3] != long[:summaryLength-3] {
		t.Error("truncated prefix must match original")
	}
}

func TestTruncateResponse(t *testing.T) {
	short := strings.Repeat("a", characterLimit)
	if got := truncateResponse(short); got != short {
		t.Error("output at the cap must pass through unchanged")
	}

	long := strings.Repeat("b", characterLimit+500)
	got := truncateResponse(long)
	if !strings.HasSuffix(got, truncationNotice) {
		t.Errorf("expected truncation notice suffix, got %q", got[len(got)-60:])
	}
	wantLen := characterLimit - 50 + len([]rune(truncationNotice))
	if len([]rune(got)) != wantLen {
		t.Errorf("expected %d characters, got %d", wantLen, len([]rune(got)))
	}
}

func TestFormatEntryMarkdown(t *testing.T) {
	entry := feedly.Entry{
		ID:        "entry-1",
		Title:     "Go 1.26 Released",
		Author:    "The Go Team",
		Published: int64p(1704067200000),
		Unread:    true,
		Alternate: []feedly.Link{{Href: "https://go.dev/blog/go1.26"}},
		Summary:   &feedly.ContentObject{Content: "A short summary."},
	}

	got := formatEntryMarkdown(&entry, false)

	for _, want := range []string{
		"### Go 1.26 Released",
		"**Author:** The Go Team",
		"**Unread:** Yes",
		"**ID:** `entry-1`",
		"**URL:** [https://go.dev/blog/go1.26](https://go.dev/blog/go1.26)",
		"**Summary:** A short summary.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFormatEntryMarkdown_Defaults(t *testing.T) {
	got := formatEntryMarkdown(&feedly.Entry{ID: "entry-2"}, false)

	for _, want := range []string{"### Untitled", "**Author:** Unknown author", "**Published:** Unknown", "**Unread:** No"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "**URL:**") {
		t.Error("expected no URL line when the entry has no URL")
	}
	if strings.Contains(got, "**Summary:**") {
		t.Error("expected no summary line when the entry has no body")
	}
}

func TestFormatEntryMarkdown_ContentMode(t *testing.T) {
	long := strings.Repeat("x", 400)
	entry := feedly.Entry{
		ID:          "entry-3",
		FullContent: strp(long),
		Summary:     &feedly.ContentObject{Content: "short summary"},
	}

	withContent := formatEntryMarkdown(&entry, true)
	if !strings.Contains(withContent, "**Content:**\n"+long) {
		t.Error("expected full, untruncated content when requested")
	}

	withoutContent := formatEntryMarkdown(&entry, false)
	if strings.Contains(withoutContent, "**Content:**") {
		t.Error("expected no content block in summary mode")
	}
	if !strings.Contains(withoutContent, "**Summary:** "+strings.Repeat("x", 297)+"...") {
		t.Error("expected the summary mode to truncate the body at 300 characters")
	}
}

func TestFormatEntriesMarkdown(t *testing.T) {
	if got := formatEntriesMarkdown(nil, false); got != "No articles found." {
		t.Errorf("empty list must render the sentinel, got %q", got)
	}

	entries := []feedly.Entry{{ID: "e1", Title: "One"}, {ID: "e2", Title: "Two"}}
	got := formatEntriesMarkdown(entries, false)
	if !strings.Contains(got, "\n\n---\n\n") {
		t.Error("expected entries to be joined with a horizontal rule")
	}
}

func TestFormatStreamContentsMarkdown(t *testing.T) {
	page := &feedly.StreamPage{
		Items:        []feedly.Entry{{ID: "e1", Title: "One"}, {ID: "e2", Title: "Two"}},
		Continuation: "next-token",
	}

	got := formatStreamContentsMarkdown(page)
	if !strings.Contains(got, "## Articles (2 found)") {
		t.Errorf("expected heading with count, got:\n%s", got)
	}
	if !strings.Contains(got, "Use continuation token: `next-token`") {
		t.Errorf("expected continuation notice, got:\n%s", got)
	}

	empty := formatStreamContentsMarkdown(&feedly.StreamPage{})
	if !strings.Contains(empty, "## Articles (0 found)") || !strings.Contains(empty, "No articles found.") {
		t.Errorf("expected empty page rendering, got:\n%s", empty)
	}
	if strings.Contains(empty, "continuation token") {
		t.Error("expected no continuation notice without a token")
	}
}

func TestFormatProfileMarkdown(t *testing.T) {
	profile := &feedly.Profile{ID: "user-1", Email: "user@example.com", FullName: "Ada Example", Locale: "en-GB", Login: "ada"}

	got := formatProfileMarkdown(profile)
	for _, want := range []string{"## Feedly Profile", "**User ID:** `user-1`", "**Email:** user@example.com", "**Name:** Ada Example", "**Locale:** en-GB", "**Login:** ada"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}

	sparse := formatProfileMarkdown(&feedly.Profile{GivenName: "Ada"})
	if !strings.Contains(sparse, "**User ID:** `Unknown`") || !strings.Contains(sparse, "**Name:** Ada") || !strings.Contains(sparse, "**Email:** Not available") {
		t.Errorf("expected fallbacks, got:\n%s", sparse)
	}
}

func TestFormatSubscriptionsMarkdown(t *testing.T) {
	if got := formatSubscriptionsMarkdown(nil); got != "No subscriptions found." {
		t.Errorf("empty list must render the sentinel, got %q", got)
	}

	subs := []feedly.Subscription{
		{
			ID:         "feed/https://example.com/rss",
			Title:      "Example Blog",
			Website:    "https://example.com",
			Categories: []feedly.Category{{Label: "Tech"}, {Label: "Go"}},
		},
		{ID: "feed/https://other.example/rss"},
	}

	got := formatSubscriptionsMarkdown(subs)
	for _, want := range []string{
		"## Subscriptions (2 feeds)",
		"### Example Blog",
		"**Feed ID:** `feed/https://example.com/rss`",
		"**Website:** [https://example.com](https://example.com)",
		"**Categories:** Tech, Go",
		"### Untitled",
		"**Categories:** Uncategorized",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFormatCategoriesMarkdown(t *testing.T) {
	if got := formatCategoriesMarkdown(nil); got != "No categories found." {
		t.Errorf("empty list must render the sentinel, got %q", got)
	}

	got := formatCategoriesMarkdown([]feedly.Category{{ID: "user/1/category/Tech", Label: "Tech"}, {ID: "user/1/category/misc"}})
	for _, want := range []string{"## Categories (2 found)", "- **Tech**", "  - ID: `user/1/category/Tech`", "- **Unlabeled**"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFormatTagsMarkdown(t *testing.T) {
	if got := formatTagsMarkdown(nil); got != "No tags found." {
		t.Errorf("empty list must render the sentinel, got %q", got)
	}

	got := formatTagsMarkdown([]feedly.Tag{
		{ID: "user/1/tag/reading", Label: "Reading"},
		{ID: "user/1/tag/global.saved"},
	})
	for _, want := range []string{"## Tags (2 found)", "- **Reading**", "- **global.saved**", "  - ID: `user/1/tag/global.saved`"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestClassifyStream(t *testing.T) {
	tests := []struct {
		streamID string
		wantName string
		wantKind string
	}{
		{"user/1/category/Tech", "Tech", "Category"},
		{"user/1/tag/global.saved", "global.saved", "Tag"},
		{"feed/https://example.com/rss", "https://example.com/rss", "Feed"},
		{"something-else", "something-else", "Stream"},
	}

	for _, tt := range tests {
		t.Run(tt.streamID, func(t *testing.T) {
			name, kind := classifyStream(tt.streamID)
			if name != tt.wantName || kind != tt.wantKind {
				t.Errorf("classifyStream(%q) = (%q, %q), want (%q, %q)", tt.streamID, name, kind, tt.wantName, tt.wantKind)
			}
		})
	}
}

func TestFormatUnreadCountsMarkdown(t *testing.T) {
	if got := formatUnreadCountsMarkdown(nil); got != "No unread counts available." {
		t.Errorf("empty list must render the sentinel, got %q", got)
	}

	counts := []feedly.UnreadCount{
		{ID: "feed/a", Count: 3},
		{ID: "feed/b", Count: 10},
		{ID: "feed/c", Count: 1},
	}

	got := formatUnreadCountsMarkdown(counts)
	idxB := strings.Index(got, "feed/b")
	idxA := strings.Index(got, "feed/a")
	idxC := strings.Index(got, "feed/c")
	if !(idxB < idxA && idxA < idxC) {
		t.Errorf("expected descending count order b, a, c, got:\n%s", got)
	}
	if !strings.Contains(got, "- **b** (Feed): 10 unread (updated: Unknown)") {
		t.Errorf("expected formatted count line, got:\n%s", got)
	}

	// Original slice must be untouched.
	if counts[0].ID != "feed/a" {
		t.Error("expected input slice order to be preserved")
	}
}

func TestFormatUnreadCountsMarkdown_StableTies(t *testing.T) {
	counts := []feedly.UnreadCount{
		{ID: "feed/first", Count: 5},
		{ID: "feed/second", Count: 5},
	}

	got := formatUnreadCountsMarkdown(counts)
	if strings.Index(got, "feed/first") > strings.Index(got, "feed/second") {
		t.Errorf("expected ties to keep original order, got:\n%s", got)
	}
}
