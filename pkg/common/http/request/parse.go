package request

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-selectq/pkg/common/http/validation"
)

var (
	ErrBindFailed       = errors.New("request: bind failed")
	ErrValidationFailed = errors.New("request: validation failed")
)

// ParseRequest binds the request into T (query for GET, body by content type
// otherwise) and validates it.
func ParseRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBind(&req); err != nil {
		return nil, errors.Wrap(ErrBindFailed, err.Error())
	}

	if ok, msg := validation.IsRequestValid(req); !ok {
		return nil, errors.Wrap(ErrValidationFailed, msg)
	}

	return &req, nil
}
