package validators

import "errors"

var (
	ErrNameEmpty   = errors.New("no name provided")
	ErrNameTooLong = errors.New("name is too long")
)

func NameValidator(n string) error {
	if n == "" {
		return ErrNameEmpty
	}

	if len(n) > 255 {
		return ErrNameTooLong
	}

	return nil
}
