package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/generate"
	"github.com/labstack/echo/v4"
)

// maxPromptBody bounds the prompt proxy request body.
const maxPromptBody = 1 << 20

type Generator interface {
	Generate(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

type GenerateRouter struct {
	e         *echo.Echo
	generator Generator
}

func NewGenerateRouter(e *echo.Echo, generator Generator) *GenerateRouter {
	return &GenerateRouter{
		e:         e,
		generator: generator,
	}
}

func (r *GenerateRouter) Bind() {
	r.e.POST("/api/gemini-api", r.generateHandler)
}

// generateHandler godoc
// @Summary Prompt completion
// @Description Forwards a prompt, or a complete generateContent payload, to Gemini and returns its response unchanged.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Prompt or contents"
// @Success 200 {object} map[string]any
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 500 {object} apperr.ErrorResponse
// @Router /api/gemini-api [post]
func (r *GenerateRouter) generateHandler(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPromptBody))
	if err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	payload, err := generate.BuildPayload(body)
	if err != nil {
		return apperr.NewValidation(generate.MissingInputMessage)
	}

	out, err := r.generator.Generate(c.Request().Context(), payload)
	if err != nil {
		if errors.Is(err, generate.ErrMissingAPIKey) {
			return echo.NewHTTPError(http.StatusInternalServerError, generate.MissingAPIKeyMessage)
		}
		return err
	}

	return c.JSONBlob(http.StatusOK, out)
}
