package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	assert.Equal(t, "XXC001", Redact("ACC001"))
	assert.Equal(t, "XXXXXXX6789", Redact("123-45-6789"))
	assert.Equal(t, "XXX", Redact("AB1"))
	assert.Equal(t, "", Redact(""))

	// Already-masked input is a fixed point
	assert.Equal(t, "XXC001", Redact(Redact("ACC001")))
}
