package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// LoadEnvString / LoadEnvWithFallback
// ============================================================================

func TestLoadEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "custom_value")
	assert.Equal(t, "custom_value", LoadEnvString("TEST_STRING", "default_value"))

	t.Setenv("TEST_STRING", "")
	assert.Equal(t, "default_value", LoadEnvString("TEST_STRING", "default_value"))
}

func TestLoadEnvWithFallback_ValidValue(t *testing.T) {
	t.Setenv("TEST_DRIVER", "postgres")

	result := LoadEnvWithFallback("TEST_DRIVER", "sqlite", ValidateOneOf("postgres", "sqlite"))

	assert.Equal(t, "postgres", result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
	assert.Equal(t, "TEST_DRIVER", result.Key)
}

func TestLoadEnvWithFallback_Unset(t *testing.T) {
	result := LoadEnvWithFallback("TEST_DRIVER_UNSET", "sqlite", ValidateOneOf("postgres", "sqlite"))

	assert.Equal(t, "sqlite", result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_InvalidValue(t *testing.T) {
	t.Setenv("TEST_DRIVER", "oracle")

	result := LoadEnvWithFallback("TEST_DRIVER", "sqlite", ValidateOneOf("postgres", "sqlite"))

	assert.Equal(t, "sqlite", result.Value)
	assert.True(t, result.FallbackApplied)
	if assert.Len(t, result.Warnings, 1) {
		assert.Contains(t, result.Warnings[0], "Invalid TEST_DRIVER='oracle'")
		assert.Contains(t, result.Warnings[0], "falling back to default 'sqlite'")
	}
}

func TestLoadEnvWithFallback_TrimsAndSkipsNilValidator(t *testing.T) {
	t.Setenv("TEST_STRING", "  any_value ")

	result := LoadEnvWithFallback("TEST_STRING", "default", nil)

	assert.Equal(t, "any_value", result.Value)
	assert.False(t, result.FallbackApplied)
}

// ============================================================================
// Typed loaders
// ============================================================================

func TestLoadEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     time.Duration
		fallback bool
	}{
		{name: "valid", value: "15s", want: 15 * time.Second},
		{name: "compound", value: "1m30s", want: 90 * time.Second},
		{name: "unset", value: "", want: 10 * time.Second},
		{name: "bad format", value: "soon", want: 10 * time.Second, fallback: true},
		{name: "negative rejected", value: "-1s", want: 10 * time.Second, fallback: true},
		{name: "zero rejected", value: "0s", want: 10 * time.Second, fallback: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_TIMEOUT", tt.value)

			result := LoadEnvDuration("TEST_TIMEOUT", 10*time.Second, ValidatePositiveDuration)

			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
			assert.Equal(t, tt.fallback, len(result.Warnings) == 1)
		})
	}
}

func TestLoadEnvInt(t *testing.T) {
	inRange := func(n int) error { return ValidateIntRange(n, 1, 100) }
	tests := []struct {
		name     string
		value    string
		want     int
		fallback bool
	}{
		{name: "valid", value: "20", want: 20},
		{name: "unset", value: "", want: 12},
		{name: "decimal", value: "12.5", want: 12, fallback: true},
		{name: "spaces", value: " 20 ", want: 12, fallback: true},
		{name: "below minimum", value: "0", want: 12, fallback: true},
		{name: "above maximum", value: "101", want: 12, fallback: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_PAGE_SIZE", tt.value)

			result := LoadEnvInt("TEST_PAGE_SIZE", 12, inRange)

			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
		})
	}
}

func TestLoadEnvFloat(t *testing.T) {
	nonNegative := func(f float64) error { return ValidateFloatRange(f, 0, 1000) }

	t.Setenv("TEST_THRESHOLD", "48.5")
	assert.Equal(t, 48.5, LoadEnvFloat("TEST_THRESHOLD", 2, nonNegative).Value)

	t.Setenv("TEST_THRESHOLD", "-3")
	result := LoadEnvFloat("TEST_THRESHOLD", 2, nonNegative)
	assert.Equal(t, 2.0, result.Value)
	assert.True(t, result.FallbackApplied)

	t.Setenv("TEST_THRESHOLD", "near")
	assert.True(t, LoadEnvFloat("TEST_THRESHOLD", 2, nonNegative).FallbackApplied)
}

func TestLoadEnvBool(t *testing.T) {
	for _, v := range []string{"1", "t", "T", "true", "TRUE", "True"} {
		t.Setenv("TEST_BOOL", v)
		assert.True(t, LoadEnvBool("TEST_BOOL", false).Value, v)
	}
	for _, v := range []string{"0", "f", "F", "false", "FALSE", "False"} {
		t.Setenv("TEST_BOOL", v)
		assert.False(t, LoadEnvBool("TEST_BOOL", true).Value, v)
	}

	t.Setenv("TEST_BOOL", "yes")
	result := LoadEnvBool("TEST_BOOL", true)
	assert.True(t, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warnings[0], "expected 'true' or 'false'")
}
