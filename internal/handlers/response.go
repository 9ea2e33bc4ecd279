package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
)

type APIError struct {
	Message       string   `json:"message"`
	Code          string   `json:"code,omitempty"`
	Category      string   `json:"category,omitempty"`
	CleanedText   string   `json:"cleaned_text,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Parameter     string   `json:"parameter,omitempty"`
	Resources     []string `json:"resources,omitempty"`
}

type ErrorEnvelope struct {
	Outcome string   `json:"outcome"`
	Error   APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Outcome: "error",
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondFault maps a pipeline fault to its HTTP status and renders the
// structured failure envelope. Incomplete intake is a conflict with the
// session's current state; everything else is a bad request.
func RespondFault(c *gin.Context, f *fault.Fault) {
	status := http.StatusBadRequest
	if f.Kind == fault.KindIntakeIncomplete {
		status = http.StatusConflict
	}
	c.JSON(status, ErrorEnvelope{
		Outcome: "error",
		Error: APIError{
			Message:       f.Detail,
			Code:          string(f.Kind),
			Category:      f.Category,
			CleanedText:   f.CleanedText,
			MissingFields: f.MissingFields,
			Parameter:     f.Parameter,
			Resources:     f.Resources,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
