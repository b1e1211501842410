package handlers

import (
  "errors"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/marketpulse/marketpulse-backend/internal/services"
)

// timeLayout is the wire format for timestamps in response payloads.
const timeLayout = time.RFC3339

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses.
// fallbackCode labels the 500 branch so logs can tell handlers apart.
func RespondServiceError(c *gin.Context, fallbackCode string, err error) {
  switch {
  case errors.Is(err, services.ErrInvalidInput):
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
  case errors.Is(err, services.ErrEmailTaken):
    RespondError(c, http.StatusBadRequest, "email_taken", err)
  case services.IsAuthError(err):
    RespondError(c, http.StatusUnauthorized, "unauthorized", err)
  case errors.Is(err, services.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  default:
    RespondError(c, http.StatusInternalServerError, fallbackCode, err)
  }
}
