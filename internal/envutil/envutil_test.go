package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStringEnv(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STRING", "value")

	assert.Equal(t, "value", GetStringEnv("ENVUTIL_TEST_STRING", "default"))
	assert.Equal(t, "default", GetStringEnv("ENVUTIL_TEST_MISSING", "default"))
}

func TestLookupStringEnv(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_SET", "x")
	t.Setenv("ENVUTIL_TEST_EMPTY", "")

	val, ok := LookupStringEnv("ENVUTIL_TEST_SET")
	assert.True(t, ok)
	assert.Equal(t, "x", val)

	_, ok = LookupStringEnv("ENVUTIL_TEST_EMPTY")
	assert.False(t, ok)
}

func TestGetIntEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "given valid integer, then parses it", value: "12111", want: 12111},
		{name: "given empty value, then returns default", value: "", want: 99},
		{name: "given invalid integer, then returns default", value: "not-a-number", want: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVUTIL_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetIntEnv("ENVUTIL_TEST_INT", 99))
		})
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("ENVUTIL_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, GetBoolEnv("ENVUTIL_TEST_BOOL", false))
		})
	}
}
