package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCursor is returned when a cursor cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Position is the keyset position of the last row of a page. Listings are ordered by
// created_at DESC, id DESC, so the next page holds rows strictly after Position in
// that order.
type Position struct {
	CreatedAt time.Time `json:"t"`
	ID        string    `json:"id"`
}

// EncodeCursor renders a position as an opaque URL-safe token.
func EncodeCursor(p Position) string {
	// Marshal of a struct with a time and a string cannot fail.
	b, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor parses a token produced by EncodeCursor.
// The empty token is not a position; callers treat it as "first page".
func DecodeCursor(s string) (Position, error) {
	var p Position
	if s == "" {
		return p, fmt.Errorf("%w: empty", ErrInvalidCursor)
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		return p, fmt.Errorf("%w: incomplete position", ErrInvalidCursor)
	}
	return p, nil
}
