package pagination_test

import (
	"testing"

	"booksaetong/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := pagination.DefaultConfig()

	if config.DefaultLimit != 12 {
		t.Errorf("DefaultConfig() DefaultLimit = %d, want 12", config.DefaultLimit)
	}
	if config.MaxLimit != 50 {
		t.Errorf("DefaultConfig() MaxLimit = %d, want 50", config.MaxLimit)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("with env vars set", func(t *testing.T) {
		t.Setenv("PAGINATION_PAGE_SIZE", "20")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "80")

		config := pagination.LoadFromEnv()

		if config.DefaultLimit != 20 {
			t.Errorf("LoadFromEnv() DefaultLimit = %d, want 20", config.DefaultLimit)
		}
		if config.MaxLimit != 80 {
			t.Errorf("LoadFromEnv() MaxLimit = %d, want 80", config.MaxLimit)
		}
	})

	t.Run("with no env vars", func(t *testing.T) {
		t.Setenv("PAGINATION_PAGE_SIZE", "")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "")

		if got := pagination.LoadFromEnv(); got != pagination.DefaultConfig() {
			t.Errorf("LoadFromEnv() = %+v, want %+v", got, pagination.DefaultConfig())
		}
	})

	t.Run("with invalid value", func(t *testing.T) {
		t.Setenv("PAGINATION_PAGE_SIZE", "twelve")

		if got := pagination.LoadFromEnv().DefaultLimit; got != 12 {
			t.Errorf("LoadFromEnv() DefaultLimit = %d, want fallback 12", got)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    pagination.Config
		wantError bool
	}{
		{name: "valid", config: pagination.Config{DefaultLimit: 12, MaxLimit: 12}},
		{name: "zero default", config: pagination.Config{DefaultLimit: 0, MaxLimit: 10}, wantError: true},
		{name: "max below default", config: pagination.Config{DefaultLimit: 20, MaxLimit: 10}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
