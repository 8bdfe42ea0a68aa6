package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashStringDeterministic(t *testing.T) {
	assert.Equal(t, HashString("personal:Should I move cities?"), HashString("personal:Should I move cities?"))
	assert.NotEqual(t, HashString("personal:x"), HashString("career:x"))
	assert.Len(t, HashString(""), 64)
}
