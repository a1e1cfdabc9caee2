package catalog

import (
	"fmt"
	"strings"
)

type UnknownTopicMode string

const (
	UnknownTopicReject   UnknownTopicMode = "reject"
	UnknownTopicFallback UnknownTopicMode = "fallback"
)

// UnknownTopicPolicy decides what happens when a request names a topic the
// catalog does not define for the resolved language.
type UnknownTopicPolicy struct {
	Mode     UnknownTopicMode
	Fallback string
}

var RejectUnknownTopics = UnknownTopicPolicy{Mode: UnknownTopicReject}

// ParseUnknownTopicPolicy accepts "reject" or "fallback:<topicId>".
// An empty value means reject.
func ParseUnknownTopicPolicy(s string) (UnknownTopicPolicy, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == string(UnknownTopicReject) {
		return RejectUnknownTopics, nil
	}

	mode, topic, found := strings.Cut(s, ":")
	if !found || mode != string(UnknownTopicFallback) {
		return UnknownTopicPolicy{}, fmt.Errorf("invalid unknown topic policy %q: expected \"reject\" or \"fallback:<topic>\"", s)
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return UnknownTopicPolicy{}, fmt.Errorf("invalid unknown topic policy %q: fallback topic is empty", s)
	}

	return UnknownTopicPolicy{Mode: UnknownTopicFallback, Fallback: topic}, nil
}

func (p UnknownTopicPolicy) String() string {
	if p.Mode == UnknownTopicFallback {
		return string(UnknownTopicFallback) + ":" + p.Fallback
	}
	return string(UnknownTopicReject)
}
