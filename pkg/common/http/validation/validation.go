package validation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// IsRequestValid validates req against its validate tags.
// On failure it returns false and a message naming the first offending field.
func IsRequestValid(req any) (bool, string) {
	err := instance().Struct(req)
	if err == nil {
		return true, ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return false, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return false, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag())
	}
	return false, err.Error()
}
