package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("guest@bistro.example"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestSameEmail(t *testing.T) {
	assert.True(t, SameEmail("Guest@Bistro.example ", "guest@bistro.example"))
	assert.False(t, SameEmail("a@bistro.example", "b@bistro.example"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(NewDomainError("FORBIDDEN", "nope")))
	assert.False(t, IsNotFound(nil))
}
