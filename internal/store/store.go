// Package store keeps the saved-portfolio entries the API exposes under
// /portfolio. Entries are kept in insertion order.
package store

import (
	"context"
	"errors"
	"fmt"

	"realestate-sim/internal/model"
)

var (
	ErrNotFound     = errors.New("portfolio entry not found")
	ErrInvalidInput = errors.New("portfolio entry is invalid")
)

// PortfolioStore is implemented by the in-memory and redis backends.
type PortfolioStore interface {
	List(ctx context.Context) ([]model.PortfolioEntry, error)
	Add(ctx context.Context, e model.PortfolioEntry) error
	Get(ctx context.Context, id string) (model.PortfolioEntry, error)
	Clear(ctx context.Context) error
}

func validateEntry(e model.PortfolioEntry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidInput)
	}
	if err := e.PropertyInput.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
