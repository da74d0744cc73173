package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// apiError is one entry of the {errors:[...]} body returned for failed
// validation and user-facing rejections.
type apiError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

func errorBody(msgs ...string) gin.H {
	out := make([]apiError, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, apiError{Msg: m})
	}
	return gin.H{"errors": out}
}

// respondBindingError maps a ShouldBindJSON failure to 400 with per-field
// messages. messages is keyed by the struct field name.
func respondBindingError(c *gin.Context, err error, messages map[string]string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]apiError, 0, len(verrs))
		for _, fe := range verrs {
			msg, ok := messages[fe.Field()]
			if !ok {
				msg = "Invalid value"
			}
			out = append(out, apiError{Msg: msg, Param: strings.ToLower(fe.Field())})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": out})
		return
	}
	c.JSON(http.StatusBadRequest, errorBody("Invalid request body"))
}

// splitSkills turns the comma-delimited skills input into a trimmed, ordered
// list, dropping empty items.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "01/02/2006"}

// parseDate accepts the date formats clients actually send.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
