package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SPACEDODGE_TEST_STR", "hello")
	assert.Equal(t, "hello", GetEnv("SPACEDODGE_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SPACEDODGE_TEST_MISSING", "fallback"))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("SPACEDODGE_TEST_FLOAT", " 0.25 ")
	t.Setenv("SPACEDODGE_TEST_BAD", "abc")
	assert.InDelta(t, 0.25, GetEnvFloat("SPACEDODGE_TEST_FLOAT", 1), 1e-9)
	assert.InDelta(t, 1.0, GetEnvFloat("SPACEDODGE_TEST_BAD", 1), 1e-9)
	assert.InDelta(t, 2.0, GetEnvFloat("SPACEDODGE_TEST_MISSING", 2), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SPACEDODGE_TEST_ON", "Yes")
	t.Setenv("SPACEDODGE_TEST_OFF", "0")
	t.Setenv("SPACEDODGE_TEST_JUNK", "maybe")
	assert.True(t, GetEnvBool("SPACEDODGE_TEST_ON", false))
	assert.False(t, GetEnvBool("SPACEDODGE_TEST_OFF", true))
	assert.True(t, GetEnvBool("SPACEDODGE_TEST_JUNK", true))
	assert.False(t, GetEnvBool("SPACEDODGE_TEST_MISSING", false))
}
