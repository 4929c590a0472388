package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("fixture add", From("fixture %v", "add"))
	assert.Equal("case 3", From("case %d", 3))
	assert.NotNil(NewPrinter())
}
