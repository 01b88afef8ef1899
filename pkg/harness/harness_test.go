package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"TestLogin", "TestLogin"},
		{"TestLogin/wrong_password", "TestLogin_wrong_password"},
		{"TestUpload/drag and drop", "TestUpload_drag_and_drop"},
		{"Test:colon", "Test_colon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.name))
		})
	}
}

func TestShortRunID(t *testing.T) {
	id := shortRunID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, shortRunID(), "ids should be unique per call")
}
