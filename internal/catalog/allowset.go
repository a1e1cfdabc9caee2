package catalog

import "strings"

// AllowSet is a case-insensitive set of account handles.
type AllowSet struct {
	handles map[string]struct{}
}

func NewAllowSet(handles ...string) AllowSet {
	s := AllowSet{handles: make(map[string]struct{}, len(handles))}
	for _, h := range handles {
		s.handles[normalizeHandle(h)] = struct{}{}
	}
	return s
}

func (s AllowSet) Contains(handle string) bool {
	if handle == "" {
		return false
	}
	_, ok := s.handles[normalizeHandle(handle)]
	return ok
}

func (s AllowSet) Len() int { return len(s.handles) }

func normalizeHandle(h string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "@"))
}
