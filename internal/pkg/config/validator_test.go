package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(30*time.Second, time.Second, time.Minute))
	assert.NoError(t, ValidateDuration(time.Second, time.Second, time.Minute))
	assert.ErrorContains(t, ValidateDuration(500*time.Millisecond, time.Second, time.Minute), "below minimum")
	assert.ErrorContains(t, ValidateDuration(2*time.Minute, time.Second, time.Minute), "exceeds maximum")
	assert.ErrorContains(t, ValidateDuration(time.Second, time.Minute, time.Second), "invalid range")
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.ErrorContains(t, ValidatePositiveDuration(0), "must be positive")
	assert.ErrorContains(t, ValidatePositiveDuration(-time.Second), "must be positive")
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(1, 1, 100))
	assert.NoError(t, ValidateIntRange(100, 1, 100))
	assert.ErrorContains(t, ValidateIntRange(0, 1, 100), "below minimum")
	assert.ErrorContains(t, ValidateIntRange(101, 1, 100), "exceeds maximum")
	assert.ErrorContains(t, ValidateIntRange(5, 10, 1), "invalid range")
}

func TestValidateFloatRange(t *testing.T) {
	assert.NoError(t, ValidateFloatRange(0, 0, 10))
	assert.ErrorContains(t, ValidateFloatRange(-0.5, 0, 10), "below minimum")
	assert.ErrorContains(t, ValidateFloatRange(10.5, 0, 10), "exceeds maximum")
}

func TestValidateOneOf(t *testing.T) {
	v := ValidateOneOf("json", "text")

	assert.NoError(t, v("json"))
	assert.NoError(t, v("TEXT"))
	err := v("xml")
	require.Error(t, err)
	assert.Equal(t, "must be one of json, text", err.Error())
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr string
	}{
		{url: "https://api.example.com"},
		{url: "http://localhost:8080/v1"},
		{url: "ftp://example.com", wantErr: "scheme"},
		{url: "https://", wantErr: "host"},
		{url: "://bad", wantErr: "invalid URL"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
