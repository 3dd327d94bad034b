package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFatal(t *testing.T) {
	assert.True(t, Fatal(ErrAuthentication))
	assert.True(t, Fatal(ErrValidation))
	assert.True(t, Fatal(fmt.Errorf("login: %w", ErrAuthentication)))

	assert.False(t, Fatal(ErrNotFound))
	assert.False(t, Fatal(ErrRateLimited))
	assert.False(t, Fatal(ErrTransient))
	assert.False(t, Fatal(nil))
}
