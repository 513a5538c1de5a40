// Package form binds and validates the venue, artist and show submission
// forms. Validation failures are reported as ready-to-flash messages of the
// form "Error in the <Label> field - <message>".
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// StartTimeLayout is the layout of the show start_time field.
const StartTimeLayout = "2006-01-02 15:04:05"

// startTimeLayouts are tried in order when parsing start_time; the second
// and third are what browsers send for <input type="datetime-local">.
var startTimeLayouts = []string{StartTimeLayout, "2006-01-02T15:04", "2006-01-02T15:04:05"}

var phonePattern = regexp.MustCompile(`^[0-9]\d\d-[0-9]\d\d-[0-9]\d\d\d$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report the human label instead of the Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "us_state", func(fl validator.FieldLevel) bool {
		_, ok := stateSet[fl.Field().String()]
		return ok
	})
	mustRegister(v, "genre", func(fl validator.FieldLevel) bool {
		_, ok := genreSet[fl.Field().String()]
		return ok
	})
	mustRegister(v, "id", func(fl validator.FieldLevel) bool {
		id, err := strconv.ParseUint(fl.Field().String(), 10, 64)
		return err == nil && id > 0
	})
	mustRegister(v, "start_time", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String(), time.UTC)
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register %s: %v", tag, err))
	}
}

// ParseStartTime parses a start_time value in loc.
func ParseStartTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("form: invalid start time %q", value)
}

// checked reports whether a checkbox was ticked. Only "y" counts.
func checked(value string) bool {
	return value == "y"
}

// messages runs the validator over form and converts failures into flash
// messages, one per field and rule, in field order.
func messages(form any) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	seen := map[string]bool{}
	var out []string
	for _, fe := range verrs {
		label := fe.Field()
		// genres[2] and friends collapse into one message for the field
		if i := strings.IndexByte(label, '['); i >= 0 {
			label = label[:i]
		}
		msg := fmt.Sprintf("Error in the %s field - %s", label, describe(fe))
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "url":
		return "Invalid URL."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "phone":
		return "Invalid phone number, use the format XXX-XXX-XXXX."
	case "us_state":
		return "Not a valid choice."
	case "genre":
		return fmt.Sprintf("Invalid value, must be one of: %s.", strings.Join(GenreChoices, ","))
	case "id":
		return "Not a valid ID, must be a positive integer."
	case "start_time":
		return "Not a valid datetime value."
	default:
		return fmt.Sprintf("Failed the %s check.", fe.Tag())
	}
}
