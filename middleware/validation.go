package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joshu-sajeev/bidboard/common"
)

var validate = validator.New()

func Bind[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.Error(common.KindErrf(http.StatusBadRequest, common.KindValidation, "invalid json: %v", err.Error()))
		return false
	}

	return check(c, dest)
}

// BindQuery is Bind for query-string parameters.
func BindQuery[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		c.Error(common.KindErrf(http.StatusBadRequest, common.KindValidation, "invalid query: %v", err.Error()))
		return false
	}

	return check(c, dest)
}

func check[T any](c *gin.Context, dest *T) bool {
	if err := validate.Struct(dest); err != nil {
		c.Error(common.APIError{
			Status:  http.StatusBadRequest,
			Kind:    common.KindValidation,
			Message: "validation failed",
			Fields:  FormatValidationErrors(err),
		})
		return false
	}

	return true
}

// ValidEmail reports whether s is a syntactically valid email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ValidID reports whether s is a record id (a UUID).
func ValidID(s string) bool {
	return validate.Var(s, "required,uuid") == nil
}

func FormatValidationErrors(err error) map[string]any {
	errs := map[string]any{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}
	for _, e := range verrs {
		errs[e.Field()] = "failed " + e.Tag()
	}
	return errs
}
