// Package feedly implements a client for the Feedly Cloud API.
package feedly

import "encoding/json"

// Profile holds the authenticated user's profile.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email,omitempty"`
	FullName   string `json:"fullName,omitempty"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
	Picture    string `json:"picture,omitempty"`
	Locale     string `json:"locale,omitempty"`
	Login      string `json:"login,omitempty"`
	Wave       string `json:"wave,omitempty"`
	Created    int64  `json:"created,omitempty"`
}

// Category is a user folder grouping subscriptions. Tags share the same
// shape but are a distinct concept in the API.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Tag is a user tag; the reserved "global.saved" tag holds saved articles.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Subscription is a feed the user follows.
type Subscription struct {
	ID         string     `json:"id"`
	Title      string     `json:"title,omitempty"`
	Website    string     `json:"website,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	VisualURL  string     `json:"visualUrl,omitempty"`
	Updated    int64      `json:"updated,omitempty"`
	Added      int64      `json:"added,omitempty"`
}

// UnreadCount is the per-stream unread marker record.
type UnreadCount struct {
	ID      string `json:"id"`
	Count   int    `json:"count"`
	Updated *int64 `json:"updated,omitempty"`
}

// unreadCountsResponse is the envelope returned by /markers/counts.
type unreadCountsResponse struct {
	Unreadcounts []UnreadCount `json:"unreadcounts"`
}

// Link is an alternate location for an entry.
type Link struct {
	Href string `json:"href,omitempty"`
	Type string `json:"type,omitempty"`
}

// ContentObject is the API's wrapper around an HTML body.
type ContentObject struct {
	Content   string `json:"content,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Origin identifies the feed an entry was crawled from.
type Origin struct {
	StreamID string `json:"streamId,omitempty"`
	Title    string `json:"title,omitempty"`
	HTMLURL  string `json:"htmlUrl,omitempty"`
}

// Entry is a single article. The raw response bytes are retained so JSON
// output can pass the upstream payload through without losing fields this
// client does not model.
type Entry struct {
	ID           string         `json:"id"`
	Title        string         `json:"title,omitempty"`
	Author       string         `json:"author,omitempty"`
	Published    *int64         `json:"published,omitempty"`
	Crawled      *int64         `json:"crawled,omitempty"`
	Unread       bool           `json:"unread,omitempty"`
	Alternate    []Link         `json:"alternate,omitempty"`
	CanonicalURL string         `json:"canonicalUrl,omitempty"`
	Origin       *Origin        `json:"origin,omitempty"`
	Keywords     []string       `json:"keywords,omitempty"`
	FullContent  *string        `json:"fullContent,omitempty"`
	Content      *ContentObject `json:"content,omitempty"`
	Summary      *ContentObject `json:"summary,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the entry and retains the raw payload.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entry(p)
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the original upstream payload when available.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	type plain Entry
	return json.Marshal(plain(e))
}

// ArticleContent selects the entry body by ordered fallback: fullContent
// first (its presence wins even when empty), then content.content, then
// summary.content, else the empty string.
func (e *Entry) ArticleContent() string {
	if e.FullContent != nil {
		return *e.FullContent
	}
	if e.Content != nil && e.Content.Content != "" {
		return e.Content.Content
	}
	if e.Summary != nil && e.Summary.Content != "" {
		return e.Summary.Content
	}
	return ""
}

// URL returns the first alternate link, falling back to the canonical URL.
func (e *Entry) URL() string {
	if len(e.Alternate) > 0 && e.Alternate[0].Href != "" {
		return e.Alternate[0].Href
	}
	return e.CanonicalURL
}

// StreamPage is one page of a stream contents listing.
type StreamPage struct {
	ID           string  `json:"id,omitempty"`
	Title        string  `json:"title,omitempty"`
	Updated      *int64  `json:"updated,omitempty"`
	Continuation string  `json:"continuation,omitempty"`
	Items        []Entry `json:"items"`
}

// StreamOptions selects what StreamContents fetches.
type StreamOptions struct {
	StreamID     string
	Count        int    // 1..100, 0 means the server default of 20
	UnreadOnly   bool
	Continuation string // opaque token from a previous page, echoed verbatim
	Ranked       string // "newest" (default) or "oldest"
}
