// Package product provides the HTTP handlers of the product listing endpoints.
package product

import (
	"time"

	"booksaetong/internal/domain/entity"
)

// DTO represents the JSON structure of a listing.
type DTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Price     int64     `json:"price"`
	Contents  string    `json:"contents"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(p entity.Product) DTO {
	return DTO{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Category:  p.Category,
		Price:     p.Price,
		Contents:  p.Contents,
		Address:   p.Address,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		CreatedAt: p.CreatedAt,
	}
}
