package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$49.99", Format(49.99))
	assert.Equal(t, "$0.00", Format(0))
	assert.Equal(t, "$1,234.50", Format(1234.5))
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "3 x $9.99", FormatLine(3, 9.99))
}
