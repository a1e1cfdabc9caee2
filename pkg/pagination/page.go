package pagination

// PageInfo is the cursor part of a paginated response.
type PageInfo struct {
	HasNextPage bool    `json:"has_next_page"`
	NextCursor  *string `json:"next_cursor"`
}

// SinglePage describes a result that is complete in one response.
func SinglePage() PageInfo {
	return PageInfo{HasNextPage: false, NextCursor: nil}
}
