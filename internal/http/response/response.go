package response

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/healthlens/healthlens-backend/internal/platform/apierr"
)

// ErrorEnvelope is the error body returned by every endpoint. Details carries
// the underlying error message, Stack is only populated in development mode,
// and GroqError echoes the LLM provider's own error body when one exists.
type ErrorEnvelope struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Stack     string `json:"stack,omitempty"`
	GroqError any    `json:"groqError,omitempty"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondError maps err onto the envelope. apierr errors pick their own
// status; anything else is a 500.
func RespondError(c *gin.Context, devMode bool, message string, err error) {
	status := http.StatusInternalServerError
	envelope := ErrorEnvelope{Error: message}

	if err != nil {
		envelope.Details = err.Error()
	}
	if e := apierr.From(err); e != nil {
		if e.Status != 0 {
			status = e.Status
		}
		envelope.GroqError = e.Payload
	}
	if devMode {
		envelope.Stack = string(debug.Stack())
	}

	c.JSON(status, envelope)
}
