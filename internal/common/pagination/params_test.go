package pagination_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"booksaetong/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	config := pagination.Config{DefaultLimit: 12, MaxLimit: 50}
	cursor := pagination.EncodeCursor(pagination.Position{
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		ID:        "p-1",
	})

	tests := []struct {
		name      string
		query     string
		want      pagination.Params
		wantError bool
	}{
		{name: "no parameters (use defaults)", query: "", want: pagination.Params{Limit: 12}},
		{name: "limit only", query: "limit=30", want: pagination.Params{Limit: 30}},
		{name: "cursor and limit", query: "cursor=" + cursor + "&limit=5", want: pagination.Params{Cursor: cursor, Limit: 5}},
		{name: "limit at max", query: "limit=50", want: pagination.Params{Limit: 50}},
		{name: "limit zero", query: "limit=0", wantError: true},
		{name: "limit over max", query: "limit=51", wantError: true},
		{name: "limit not a number", query: "limit=abc", wantError: true},
		{name: "malformed cursor", query: "cursor=garbage!", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/products/around?"+tt.query, nil)

			got, err := pagination.ParseQueryParams(req, config)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseQueryParams() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && got != tt.want {
				t.Errorf("ParseQueryParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParams_First(t *testing.T) {
	t.Parallel()

	if !(pagination.Params{Limit: 12}).First() {
		t.Error("Params without cursor should be the first page")
	}
	if (pagination.Params{Cursor: "x", Limit: 12}).First() {
		t.Error("Params with cursor should not be the first page")
	}
}

func TestParams_ValidateAndDefaults(t *testing.T) {
	t.Parallel()

	config := pagination.Config{DefaultLimit: 12, MaxLimit: 50}

	if err := (pagination.Params{Limit: 12}).Validate(config); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := (pagination.Params{Limit: 0}).Validate(config); err == nil {
		t.Error("Validate() with zero limit should fail")
	}
	if got := (pagination.Params{Limit: 0}).WithDefaults(config).Limit; got != 12 {
		t.Errorf("WithDefaults() limit = %d, want 12", got)
	}
	if got := (pagination.Params{Limit: 500}).WithDefaults(config).Limit; got != 50 {
		t.Errorf("WithDefaults() limit = %d, want 50", got)
	}
}

func TestNewResponse(t *testing.T) {
	t.Parallel()

	resp := pagination.NewResponse[string](nil, pagination.NewMetadata(""))
	if resp.Data == nil {
		t.Error("NewResponse() Data should be an empty slice, not nil")
	}
	if resp.HasMore {
		t.Error("NewMetadata(\"\") HasMore should be false")
	}

	resp = pagination.NewResponse([]string{"a"}, pagination.NewMetadata("next"))
	if !resp.HasMore || resp.NextCursor != "next" {
		t.Errorf("NewResponse() = %+v, want has_more with cursor", resp)
	}
}
