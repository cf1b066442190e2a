package validator

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Behyna/epay/internal/api/contract"
	"github.com/Behyna/epay/internal/constants"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const sep = " and "

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type ErrorRecorder interface {
	RecordValidationError(field, tag string)
}

type IXValidator interface {
	Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response)
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	recorder  ErrorRecorder
}

func NewXValidator(validate *validator.Validate, recorder ErrorRecorder) IXValidator {
	for key, function := range valid {
		_ = validate.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: validate,
		recorder:  recorder,
	}
}

// Validator parses the request body into data and validates it. A non-empty
// Code on the returned response means the status has already been set and
// the response should be sent as is.
func (x XValidator) Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(data); err != nil {
			c.Status(http.StatusBadRequest)
			return contract.Response{
				Code:    constants.ErrCodeInvalidRequestBody,
				Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
			}
		}
	}

	errs := x.Validate(data)
	if len(errs) == 0 {
		return responseErr
	}

	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fmt.Sprintf(message, err.FailedField))

		if x.recorder != nil {
			x.recorder.RecordValidationError(err.FailedField, err.Tag)
		}
	}

	c.Status(http.StatusUnprocessableEntity)

	return contract.Response{
		Code:    constants.ErrCodeValidationFailed,
		Message: strings.Join(errMsgs, sep),
	}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs == nil {
		return nil
	}

	fieldErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return []Error{{Error: true, FailedField: "request", Tag: "invalid"}}
	}

	for _, err := range fieldErrs {
		validationErrors = append(validationErrors, Error{
			Error:       true,
			FailedField: err.Field(),
			Tag:         err.Tag(),
			Value:       err.Value(),
		})
	}

	return validationErrors
}
