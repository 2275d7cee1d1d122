package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementDiscrimination(t *testing.T) {
	tests := []struct {
		name        string
		element     Element
		interactive bool
	}{
		{name: "text input", element: TextInput{ID: "host"}, interactive: true},
		{name: "checkbox", element: Checkbox{ID: "ssl"}, interactive: true},
		{name: "select", element: Select{Label: "Connect"}, interactive: true},
		{name: "separator", element: Separator{}, interactive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.interactive, tt.element.Interactive())
		})
	}
}

func TestFormStateClone(t *testing.T) {
	form := FormState{"host": "localhost", "ssl": true}
	clone := form.Clone()

	clone["host"] = "other"
	assert.Equal(t, "localhost", form.String("host"))
	assert.Equal(t, "other", clone.String("host"))
	assert.True(t, clone.Bool("ssl"))
}

func TestFormStateTypedAccessors(t *testing.T) {
	form := FormState{"host": "localhost", "ssl": true}

	assert.Equal(t, "localhost", form.String("host"))
	assert.Equal(t, "", form.String("ssl"), "bool value is not a string")
	assert.True(t, form.Bool("ssl"))
	assert.False(t, form.Bool("host"))
	assert.False(t, form.Bool("missing"))
}
