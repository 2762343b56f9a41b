package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	old := Env
	t.Cleanup(func() { Env = old })

	Env = map[string]string{
		"CACHE_DB": "2",
		"BAD_INT":  "two",
		"EMPTY":    "",
	}

	assert.Equal(t, 2, GetEnvInt("CACHE_DB", 0))
	assert.Equal(t, 7, GetEnvInt("BAD_INT", 7), "non-numeric values fall back to the default")
	assert.Equal(t, 7, GetEnvInt("EMPTY", 7))
	assert.Equal(t, 7, GetEnvInt("MISSING", 7))
}
