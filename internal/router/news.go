package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/catalog"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/dto"
	"github.com/labstack/echo/v4"
)

type Aggregator interface {
	Aggregate(ctx context.Context, topic, lang string) (*domain.AggregationResult, error)
}

type NewsRouter struct {
	e          *echo.Echo
	aggregator Aggregator
}

func NewNewsRouter(e *echo.Echo, aggregator Aggregator) *NewsRouter {
	return &NewsRouter{
		e:          e,
		aggregator: aggregator,
	}
}

func (r *NewsRouter) Bind() {
	r.e.GET("/api/news", r.newsHandler)
}

// newsHandler godoc
// @Summary Latest posts for a topic
// @Description Aggregates the latest original posts from the curated accounts of the requested language, filtered by the topic's keywords, newest first.
// @Tags news
// @Produce json
// @Param topic query string true "Topic id" example(labor-market)
// @Param lang query string false "Language tag, unsupported values fall back to the primary language" example(en)
// @Success 200 {object} dto.NewsResponse
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /api/news [get]
func (r *NewsRouter) newsHandler(c echo.Context) error {
	var req dto.NewsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request", err)
	}
	if err := c.Validate(&req); err != nil {
		return apperr.NewValidationWrap("invalid request", err)
	}

	res, err := r.aggregator.Aggregate(c.Request().Context(), req.Topic, req.Lang)
	if err != nil {
		if errors.Is(err, catalog.ErrTopicNotFound) {
			return apperr.NewValidation("Unknown topic")
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.NewNewsResponse(res))
}
