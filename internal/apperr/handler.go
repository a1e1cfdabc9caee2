package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every error the API returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			resp := ErrorResponse{Error: ve.Message}
			if ve.Err != nil {
				resp.Details = ve.Err.Error()
			}
			_ = c.JSON(http.StatusBadRequest, resp)
			return
		}

		var ue *UpstreamError
		if errors.As(err, &ue) {
			status := ue.Status
			if status < 400 || status > 599 {
				status = http.StatusBadGateway
			}
			_ = c.JSON(status, ErrorResponse{Error: ue.Message, Status: ue.Status, Details: ue.Body})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, ErrorResponse{Error: msg})
			return
		}

		slog.Error("Unhandled error", "error", err, "path", c.Request().URL.Path)
		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
