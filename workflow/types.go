package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BuildRequest is the resolved user input for one workflow generation.
type BuildRequest struct {
	StartImage  string `validate:"required"`
	EndImage    string `validate:"required"`
	Motion      string `validate:"required,oneof=zoom rotate_left rotate_right up down"`
	Quality     string `validate:"required,oneof=sample full"`
	MotionVideo string
	Output      string `validate:"required"`
}

// requestFlags maps struct fields to the command line flags they come from,
// so validation failures name the flag the user has to fix.
var requestFlags = map[string]string{
	"StartImage":  "start-image",
	"EndImage":    "end-image",
	"Motion":      "motion",
	"Quality":     "quality",
	"MotionVideo": "motion-video",
	"Output":      "output",
}

// Validate checks the request before any file is touched.
func (r *BuildRequest) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		flag := requestFlags[fe.StructField()]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("--%s is required", flag)
		case "oneof":
			choices := strings.ReplaceAll(fe.Param(), " ", ", ")
			return fmt.Errorf("invalid value %q for --%s (choose one of: %s)", fe.Value(), flag, choices)
		}
		return fmt.Errorf("invalid value %q for --%s", fe.Value(), flag)
	}
	return err
}
