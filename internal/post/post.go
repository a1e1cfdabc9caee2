// Package post models upstream search results and the filtered posts served to clients.
package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RawPost is a single upstream result. The original JSON object is kept
// verbatim so clients receive every provider field; typed accessors go
// through the schema adapter.
type RawPost struct {
	raw    json.RawMessage
	fields map[string]any
}

// NewRawPost decodes a JSON object. Numbers are kept as json.Number so that
// 64-bit identifiers survive without float rounding.
func NewRawPost(raw json.RawMessage) (RawPost, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return RawPost{}, fmt.Errorf("decode post: %w", err)
	}
	if fields == nil {
		return RawPost{}, fmt.Errorf("decode post: not an object")
	}

	return RawPost{
		raw:    append(json.RawMessage(nil), raw...),
		fields: fields,
	}, nil
}

// DecodeBatch decodes a JSON array of posts, skipping elements that are not
// objects. A body that is not an array yields an error.
func DecodeBatch(raw json.RawMessage) ([]RawPost, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode post array: %w", err)
	}

	posts := make([]RawPost, 0, len(items))
	for _, item := range items {
		p, err := NewRawPost(item)
		if err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (p RawPost) Fields() map[string]any { return p.fields }

func (p RawPost) ID() string { return First(p.fields, IDExtractors) }

// Author returns the author handle without a leading '@'.
func (p RawPost) Author() string {
	return strings.TrimPrefix(First(p.fields, HandleExtractors), "@")
}

func (p RawPost) Text() string { return First(p.fields, TextExtractors) }

func (p RawPost) Lang() string { return First(p.fields, LangExtractors) }

// CreatedAt returns the zero time when the timestamp is missing or unparseable.
func (p RawPost) CreatedAt() time.Time {
	return ParseTimestamp(First(p.fields, CreatedAtExtractors))
}

func (p RawPost) IsReply() bool {
	return AnyTrue(p.fields, ReplyFlags) || First(p.fields, ReplyTargetExtractors) != ""
}

func (p RawPost) IsRetweet() bool {
	if AnyTrue(p.fields, RetweetFlags) || AnyObject(p.fields, RetweetObjects) {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(p.Text()), "RT @")
}

func (p RawPost) IsQuote() bool {
	return AnyTrue(p.fields, QuoteFlags) || AnyObject(p.fields, QuoteObjects)
}

func (p RawPost) MarshalJSON() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// CanonicalPost is a RawPost that passed filtering, with its identity and
// ordering key resolved once.
type CanonicalPost struct {
	RawPost
	PostID    string
	Handle    string
	Timestamp time.Time
}

func NewCanonicalPost(raw RawPost) CanonicalPost {
	return CanonicalPost{
		RawPost:   raw,
		PostID:    raw.ID(),
		Handle:    raw.Author(),
		Timestamp: raw.CreatedAt(),
	}
}

func (p CanonicalPost) MarshalJSON() ([]byte, error) {
	return p.RawPost.MarshalJSON()
}
