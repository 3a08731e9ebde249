package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, EmailValidator("alice@example.com"))
	assert.NoError(t, EmailValidator("alice+tag@sub.example.com"))

	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("@example.com"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, PasswordValidator("password123"))
	assert.NoError(t, PasswordValidator("12345678"))

	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}

func TestNameValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NameValidator("Alice"))

	assert.ErrorIs(t, NameValidator(""), ErrNameEmpty)
	assert.ErrorIs(t, NameValidator(strings.Repeat("a", 256)), ErrNameTooLong)
}
