package post

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Extractor pulls one value out of a decoded post. It returns "" when the
// value is absent or empty.
type Extractor func(fields map[string]any) string

// Path returns an Extractor that walks nested objects by key.
func Path(keys ...string) Extractor {
	return func(fields map[string]any) string {
		v, ok := lookup(fields, keys)
		if !ok {
			return ""
		}
		return scalarString(v)
	}
}

// First tries extractors in order and returns the first non-empty value.
func First(fields map[string]any, extractors []Extractor) string {
	for _, extract := range extractors {
		if v := strings.TrimSpace(extract(fields)); v != "" {
			return v
		}
	}
	return ""
}

// The provider has shipped several shapes for the same data (camelCase,
// snake_case, v1.1-style nested user objects). Order matters: the first
// match wins.
var (
	IDExtractors = []Extractor{
		Path("id"),
		Path("id_str"),
		Path("tweet_id"),
		Path("tweetId"),
		Path("rest_id"),
	}

	HandleExtractors = []Extractor{
		Path("author", "userName"),
		Path("author", "username"),
		Path("author", "screen_name"),
		Path("user", "screen_name"),
		Path("user", "userName"),
		Path("user", "username"),
		Path("userName"),
		Path("username"),
		Path("screen_name"),
	}

	TextExtractors = []Extractor{
		Path("text"),
		Path("full_text"),
		Path("fullText"),
	}

	LangExtractors = []Extractor{
		Path("lang"),
		Path("language"),
	}

	CreatedAtExtractors = []Extractor{
		Path("createdAt"),
		Path("created_at"),
		Path("createdAtTimestamp"),
	}

	ReplyTargetExtractors = []Extractor{
		Path("inReplyToId"),
		Path("inReplyToStatusId"),
		Path("in_reply_to_status_id_str"),
		Path("in_reply_to_status_id"),
	}

	ReplyFlags   = [][]string{{"isReply"}, {"is_reply"}}
	RetweetFlags = [][]string{{"isRetweet"}, {"is_retweet"}}
	QuoteFlags   = [][]string{{"isQuote"}, {"is_quote"}, {"is_quote_status"}}

	RetweetObjects = [][]string{{"retweeted_tweet"}, {"retweetedTweet"}, {"retweeted_status"}}
	QuoteObjects   = [][]string{{"quoted_tweet"}, {"quotedTweet"}, {"quoted_status"}}
)

// AnyTrue reports whether any of the given paths holds a true boolean
// (or the string "true").
func AnyTrue(fields map[string]any, paths [][]string) bool {
	for _, p := range paths {
		v, ok := lookup(fields, p)
		if !ok {
			continue
		}
		switch b := v.(type) {
		case bool:
			if b {
				return true
			}
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil && parsed {
				return true
			}
		}
	}
	return false
}

// AnyObject reports whether any of the given paths holds a non-empty object.
func AnyObject(fields map[string]any, paths [][]string) bool {
	for _, p := range paths {
		v, ok := lookup(fields, p)
		if !ok {
			continue
		}
		if obj, isObj := v.(map[string]any); isObj && len(obj) > 0 {
			return true
		}
	}
	return false
}

func lookup(fields map[string]any, keys []string) (any, bool) {
	var cur any = fields
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[k]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return ""
	default:
		return ""
	}
}

var timestampLayouts = []string{
	time.RubyDate, // "Mon Jan 02 15:04:05 -0700 2006", the classic provider format
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses the provider's timestamp formats, including unix
// seconds and milliseconds. Missing or unparseable values yield the zero time.
func ParseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
		if n > 1_000_000_000_000 {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}

	return time.Time{}
}
