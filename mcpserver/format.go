package mcpserver

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/richardwooding/feedly-mcp/feedly"
)

const (
	// characterLimit caps every tool's final string output
	characterLimit = 25000
	// summaryLength bounds short-form article bodies
	summaryLength = 300

	truncationNotice = "\n\n... [Response truncated at 25000 characters]"
)

// truncateResponse enforces the global output cap. Applied by the dispatcher
// to every tool result, success or error, markdown or JSON.
func truncateResponse(content string) string {
	runes := []rune(content)
	if len(runes) <= characterLimit {
		return content
	}
	return string(runes[:characterLimit-50]) + truncationNotice
}

// formatTimestamp renders epoch milliseconds as local-time minute precision.
// Absent and unrepresentable timestamps both render as "Unknown".
func formatTimestamp(ms *int64) string {
	if ms == nil {
		return "Unknown"
	}
	t := time.UnixMilli(*ms)
	if t.Year() < 1 || t.Year() > 9999 {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04")
}

// truncateText cuts text to maxLength characters with an ellipsis marker.
func truncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength-3]) + "..."
}

// listEnvelope wraps listing payloads for JSON output so callers can read
// the item count without re-counting.
type listEnvelope struct {
	Count        int    `json:"count"`
	Items        any    `json:"items"`
	Continuation string `json:"continuation,omitempty"`
}

// marshalJSON pretty-prints a payload for JSON-format output.
func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatEntryMarkdown renders a single entry block. Full content is included
// only when requested and present; otherwise the truncated summary is shown,
// and an entry with no body omits the summary line entirely.
func formatEntryMarkdown(entry *feedly.Entry, includeContent bool) string {
	title := entry.Title
	if title == "" {
		title = "Untitled"
	}
	author := entry.Author
	if author == "" {
		author = "Unknown author"
	}
	unread := "No"
	if entry.Unread {
		unread = "Yes"
	}

	content := entry.ArticleContent()
	summary := truncateText(content, summaryLength)

	lines := []string{
		"### " + title,
		fmt.Sprintf("**Author:** %s | **Published:** %s | **Unread:** %s", author, formatTimestamp(entry.Published), unread),
		fmt.Sprintf("**ID:** `%s`", entry.ID),
	}
	if url := entry.URL(); url != "" {
		lines = append(lines, fmt.Sprintf("**URL:** [%s](%s)", url, url))
	}

	if includeContent && content != "" {
		lines = append(lines, "\n**Content:**\n"+content)
	} else if summary != "" {
		lines = append(lines, "\n**Summary:** "+summary)
	}

	return strings.Join(lines, "\n")
}

// formatEntriesMarkdown renders multiple entries separated by horizontal rules.
func formatEntriesMarkdown(entries []feedly.Entry, includeContent bool) string {
	if len(entries) == 0 {
		return "No articles found."
	}
	blocks := make([]string, 0, len(entries))
	for i := range entries {
		blocks = append(blocks, formatEntryMarkdown(&entries[i], includeContent))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// formatStreamContentsMarkdown renders one page of a stream listing.
func formatStreamContentsMarkdown(page *feedly.StreamPage) string {
	lines := []string{
		fmt.Sprintf("## Articles (%d found)\n", len(page.Items)),
		formatEntriesMarkdown(page.Items, false),
	}
	if page.Continuation != "" {
		lines = append(lines, fmt.Sprintf("\n\n---\n**More articles available.** Use continuation token: `%s`", page.Continuation))
	}
	return strings.Join(lines, "\n")
}

// formatProfileMarkdown renders the user profile.
func formatProfileMarkdown(profile *feedly.Profile) string {
	orDefault := func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	}
	name := profile.FullName
	if name == "" {
		name = profile.GivenName
	}

	return fmt.Sprintf(`## Feedly Profile

**User ID:** `+"`%s`"+`
**Email:** %s
**Name:** %s
**Locale:** %s
**Login:** %s
`,
		orDefault(profile.ID, "Unknown"),
		orDefault(profile.Email, "Not available"),
		orDefault(name, "Not available"),
		orDefault(profile.Locale, "Not available"),
		orDefault(profile.Login, "Not available"),
	)
}

// formatSubscriptionsMarkdown renders the subscription list.
func formatSubscriptionsMarkdown(subscriptions []feedly.Subscription) string {
	if len(subscriptions) == 0 {
		return "No subscriptions found."
	}

	lines := []string{fmt.Sprintf("## Subscriptions (%d feeds)\n", len(subscriptions))}
	for _, sub := range subscriptions {
		title := sub.Title
		if title == "" {
			title = "Untitled"
		}
		labels := make([]string, 0, len(sub.Categories))
		for _, cat := range sub.Categories {
			if cat.Label != "" {
				labels = append(labels, cat.Label)
			}
		}
		catStr := "Uncategorized"
		if len(labels) > 0 {
			catStr = strings.Join(labels, ", ")
		}

		lines = append(lines, "### "+title)
		lines = append(lines, fmt.Sprintf("**Feed ID:** `%s`", sub.ID))
		if sub.Website != "" {
			lines = append(lines, fmt.Sprintf("**Website:** [%s](%s)", sub.Website, sub.Website))
		}
		lines = append(lines, "**Categories:** "+catStr)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// formatCategoriesMarkdown renders the category list.
func formatCategoriesMarkdown(categories []feedly.Category) string {
	if len(categories) == 0 {
		return "No categories found."
	}

	lines := []string{fmt.Sprintf("## Categories (%d found)\n", len(categories))}
	for _, cat := range categories {
		label := cat.Label
		if label == "" {
			label = "Unlabeled"
		}
		lines = append(lines, fmt.Sprintf("- **%s**", label))
		lines = append(lines, fmt.Sprintf("  - ID: `%s`", cat.ID))
	}

	return strings.Join(lines, "\n")
}

// formatTagsMarkdown renders the tag list. Unlabeled tags fall back to the
// last segment of their stream ID.
func formatTagsMarkdown(tags []feedly.Tag) string {
	if len(tags) == 0 {
		return "No tags found."
	}

	lines := []string{fmt.Sprintf("## Tags (%d found)\n", len(tags))}
	for _, tag := range tags {
		label := tag.Label
		if label == "" {
			if idx := strings.LastIndex(tag.ID, "/"); idx >= 0 {
				label = tag.ID[idx+1:]
			} else {
				label = tag.ID
			}
		}
		lines = append(lines, fmt.Sprintf("- **%s**", label))
		lines = append(lines, fmt.Sprintf("  - ID: `%s`", tag.ID))
	}

	return strings.Join(lines, "\n")
}

// classifyStream derives a display name and kind from a stream ID by literal
// prefix/substring inspection. The ID itself is never rewritten.
func classifyStream(streamID string) (name, kind string) {
	switch {
	case strings.Contains(streamID, "/category/"):
		idx := strings.LastIndex(streamID, "/category/")
		return streamID[idx+len("/category/"):], "Category"
	case strings.Contains(streamID, "/tag/"):
		idx := strings.LastIndex(streamID, "/tag/")
		return streamID[idx+len("/tag/"):], "Tag"
	case strings.HasPrefix(streamID, "feed/"):
		return streamID[len("feed/"):], "Feed"
	default:
		return streamID, "Stream"
	}
}

// formatUnreadCountsMarkdown renders unread counts sorted by count
// descending; ties keep their original order.
func formatUnreadCountsMarkdown(counts []feedly.UnreadCount) string {
	if len(counts) == 0 {
		return "No unread counts available."
	}

	sorted := make([]feedly.UnreadCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	lines := []string{"## Unread Counts\n"}
	for _, item := range sorted {
		name, kind := classifyStream(item.ID)
		lines = append(lines, fmt.Sprintf("- **%s** (%s): %d unread (updated: %s)", name, kind, item.Count, formatTimestamp(item.Updated)))
		lines = append(lines, fmt.Sprintf("  - ID: `%s`", item.ID))
	}

	return strings.Join(lines, "\n")
}
