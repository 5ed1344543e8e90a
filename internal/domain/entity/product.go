// Package entity defines the marketplace's domain entities, products listed for sale
// and the users who list them, together with their validation rules and errors.
package entity

import (
	"strings"
	"time"

	"booksaetong/internal/utils/text"
)

// Product is a second-hand book listed for sale.
type Product struct {
	ID        string
	UserID    string
	Title     string
	Category  string
	Price     int64 // KRW
	Contents  string
	Address   string // Free-form address the seller trades around
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// Validate checks the fields a listing cannot exist without.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if text.CountRunes(p.Title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "title is too long"}
	}
	if p.Price < 0 {
		return &ValidationError{Field: "price", Message: "price must not be negative"}
	}
	if p.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "seller is required"}
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return &ValidationError{Field: "latitude", Message: "latitude out of range"}
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return &ValidationError{Field: "longitude", Message: "longitude out of range"}
	}
	return nil
}
