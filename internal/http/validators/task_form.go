package validators

import "errors"

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
)

func ValidateTaskForm(title, description string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if description == "" {
		return ErrDescriptionRequired
	}
	return nil
}
