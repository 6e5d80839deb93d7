package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the isodate tag on gin's validator and makes
// field errors report json names. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("binding validator is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		registerErr = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := ParseISODate(fl.Field().String())
			return err == nil
		})
	})
	return registerErr
}

// DescribeBindingError turns a ShouldBindJSON failure into a client facing
// detail line.
func DescribeBindingError(err error) string {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &fieldErrs):
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), fieldMessage(fe)))
		}
		return strings.Join(msgs, "; ")
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s has the wrong type, expected %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON body"
	case errors.Is(err, io.EOF):
		return "request body is required"
	}
	return "invalid request body"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be less than or equal to " + fe.Param()
	case "gte", "min":
		return "must be greater than or equal to " + fe.Param()
	case "isodate":
		return "must be an RFC 3339 timestamp or a YYYY-MM-DD date"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
