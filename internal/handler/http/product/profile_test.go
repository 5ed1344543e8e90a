package product_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productHTTP "booksaetong/internal/handler/http/product"
)

func patchProfile(t *testing.T, h http.Handler, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/users/"+userID+"/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestProfile_AddressMovesTheFeed(t *testing.T) {
	mux := newMux(newCatalogue(t, map[string]int{"서울": 2, "부산": 3}))

	_, before := get(t, mux, url.Values{"user_id": {"u-seoul"}})
	require.Len(t, before.Data, 2)

	w := patchProfile(t, mux, "u-seoul", `{"address":" 부산 "}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dto productHTTP.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "부산", dto.Address)
	assert.Equal(t, "서울러", dto.Nickname)
	assert.NotContains(t, w.Body.String(), "email")

	_, after := get(t, mux, url.Values{"user_id": {"u-seoul"}})
	require.Len(t, after.Data, 3)
	for _, p := range after.Data {
		assert.Contains(t, p.Address, "부산")
	}
}

func TestProfile_Errors(t *testing.T) {
	mux := newMux(newCatalogue(t, map[string]int{"서울": 1}))

	tests := []struct {
		name   string
		user   string
		body   string
		status int
	}{
		{"unknown user", "ghost", `{"nickname":"x"}`, http.StatusNotFound},
		{"blank nickname", "u-seoul", `{"nickname":"  "}`, http.StatusBadRequest},
		{"malformed json", "u-seoul", `{"address":`, http.StatusBadRequest},
		{"unknown field", "u-seoul", `{"email":"a@b.c"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := patchProfile(t, mux, tt.user, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
