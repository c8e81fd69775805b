package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response codes
const (
	CodeSuccess          = 20000
	CodeParamInvalid     = 40001
	CodeValidationFailed = 40002
	CodeInternalServer   = 50000
)

var messages = map[int]string{
	CodeSuccess:          "success",
	CodeParamInvalid:     "invalid parameters",
	CodeValidationFailed: "validation failed",
	CodeInternalServer:   "internal server error",
}

var statuses = map[int]int{
	CodeSuccess:          http.StatusOK,
	CodeParamInvalid:     http.StatusBadRequest,
	CodeValidationFailed: http.StatusUnprocessableEntity,
	CodeInternalServer:   http.StatusInternalServerError,
}

// Data is the envelope every endpoint responds with.
type Data struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse writes data with the status mapped from code.
func SuccessResponse(c *gin.Context, code int, data any) {
	c.JSON(statusOf(code), Data{
		Code:    code,
		Message: messages[code],
		Data:    data,
	})
}

// ErrorResponse aborts the request with the status mapped from code.
func ErrorResponse(c *gin.Context, code int, err error) {
	body := Data{
		Code:    code,
		Message: messages[code],
	}
	if err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(statusOf(code), body)
}

func statusOf(code int) int {
	if status, ok := statuses[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
