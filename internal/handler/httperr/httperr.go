package httperr

import (
	"net/http"

	"applytrack/internal/domain/application"
	domauto "applytrack/internal/domain/automation"
	"applytrack/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Classify maps a usecase error to a status, a public message and, for client
// errors, the reason as detail.
func Classify(err error) (int, string, any) {
	switch {
	case errs.Is(err, errs.ErrRuleNotFound):
		return http.StatusNotFound, "Rule not found", nil
	case errs.Is(err, errs.ErrJobNotFound):
		return http.StatusNotFound, "Job not found", nil
	case errs.IsAny(err, errs.ErrUnknownRuleType, domauto.ErrInvalidRuleType):
		return http.StatusBadRequest, "Unknown rule type", err.Error()
	case errs.Is(err, errs.ErrInvalidRuleConfig):
		return http.StatusBadRequest, "Invalid rule config", err.Error()
	case errs.IsAny(err, domauto.ErrMissingSchedule, application.ErrEmptyCompany, application.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid request", err.Error()
	case errs.Is(err, errs.ErrLeaderLockNotTaken):
		return http.StatusConflict, "Another instance is running a tick", nil
	default:
		return http.StatusInternalServerError, "Internal server error", nil
	}
}

func AbortWithClassified(c *gin.Context, err error) {
	status, msg, detail := Classify(err)
	AbortWithError(c, status, err, msg, detail)
}
