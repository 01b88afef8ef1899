package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestID(t *testing.T) {
	assert.Equal(t, `[data-testid="email-input"]`, testID("email-input"))
	assert.Equal(t, `[data-testid="nav-assets"]`, testID("nav-assets"))
}
