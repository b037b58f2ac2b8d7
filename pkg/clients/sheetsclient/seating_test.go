package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToValues(t *testing.T) {
	values := toValues([]string{"Date", "Seat"}, [][]string{{"2025-03-03", "1"}, {"2025-03-03", ""}})

	assert.Equal(t, [][]interface{}{
		{"Date", "Seat"},
		{"2025-03-03", "1"},
		{"2025-03-03", ""},
	}, values)

	assert.Equal(t, [][]interface{}{{"x"}}, toValues(nil, [][]string{{"x"}}))
}

func TestTabRange(t *testing.T) {
	assert.Equal(t, "'Seating'!A1", tabRange("Seating"))
	assert.Equal(t, "'Run''s plan'!A1", tabRange("Run's plan"))
}
