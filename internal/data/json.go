package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"realestate-sim/internal/model"
)

// LoadPortfolioJSON reads a request-shaped portfolio file:
// {"properties": [{...}, ...]}. A bare JSON array of properties is accepted
// too. Keys absent from a property keep the market defaults.
func LoadPortfolioJSON(path string) (*model.PortfolioInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Properties []json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		if err2 := json.Unmarshal(raw, &wrapper.Properties); err2 != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	props, err := DecodeProperties(wrapper.Properties)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(props) == 0 {
		return nil, errors.New("portfolio file has no properties")
	}
	return &model.PortfolioInput{Properties: props}, nil
}

// DecodeProperties decodes each raw property over the market defaults.
func DecodeProperties(raws []json.RawMessage) ([]model.PropertyInput, error) {
	out := make([]model.PropertyInput, 0, len(raws))
	for i, r := range raws {
		p, err := model.DecodePropertyJSON(r)
		if err != nil {
			return nil, fmt.Errorf("properties[%d]: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// NormalizeProperties validates every property, returning cleaned copies.
func NormalizeProperties(props []model.PropertyInput) ([]model.PropertyInput, error) {
	out := make([]model.PropertyInput, 0, len(props))
	for i, p := range props {
		np, err := model.NewProperty(p)
		if err != nil {
			return nil, fmt.Errorf("properties[%d]: %w", i, err)
		}
		out = append(out, np)
	}
	return out, nil
}

// WriteJSON writes v indented, for CLI output.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
