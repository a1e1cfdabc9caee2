package dto

import (
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/post"
	"github.com/DjordjeVuckovic/news-pulse/pkg/pagination"
)

type NewsRequest struct {
	Topic string `query:"topic" json:"topic" validate:"required,max=64"`
	// Lang is optional; unsupported values fall back to the primary language.
	Lang string `query:"lang" json:"lang" validate:"omitempty,max=35"`
}

// NewsResponse is the aggregated feed. Tweets are the provider's post objects
// passed through unchanged.
type NewsResponse struct {
	Tweets []post.CanonicalPost `json:"tweets" swaggertype:"array,object"`
	pagination.PageInfo
	Topic        string         `json:"topic" example:"labor-market"`
	Lang         string         `json:"lang" example:"en"`
	Sources      []string       `json:"sources" example:"AlArabiya_Eng,arabnews,alekhbariyaEN"`
	SourceStatus []SourceStatus `json:"source_status,omitempty"`
}

type SourceStatus struct {
	Account string `json:"account"`
	OK      bool   `json:"ok"`
	Fetched int    `json:"fetched"`
	Kept    int    `json:"kept"`
	Error   string `json:"error,omitempty"`
}

func NewNewsResponse(res *domain.AggregationResult) NewsResponse {
	tweets := res.Posts
	if tweets == nil {
		tweets = []post.CanonicalPost{}
	}
	sources := res.Sources
	if sources == nil {
		sources = []string{}
	}

	resp := NewsResponse{
		Tweets:   tweets,
		PageInfo: pagination.SinglePage(),
		Topic:    res.Topic,
		Lang:     string(res.Lang),
		Sources:  sources,
	}

	if res.SourceStatus != nil {
		resp.SourceStatus = make([]SourceStatus, 0, len(res.SourceStatus))
		for _, s := range res.SourceStatus {
			resp.SourceStatus = append(resp.SourceStatus, SourceStatus{
				Account: s.Account,
				OK:      s.OK,
				Fetched: s.Fetched,
				Kept:    s.Kept,
				Error:   s.Error,
			})
		}
	}

	return resp
}
