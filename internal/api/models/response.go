package models

import (
	"realestate-sim/internal/analysis"
	"realestate-sim/internal/model"
)

// StatusResponse is returned by the health routes and DELETE /portfolio.
type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// RankResponse is returned by POST /rank.
type RankResponse struct {
	Seed     uint64    `json:"seed"`
	Runs     int       `json:"runs"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked property
type Ranking struct {
	Rank         int     `json:"rank"`
	Name         string  `json:"name"`
	Runs         int     `json:"runs"`
	Undefined    int     `json:"undefined"`
	MinIRR       float64 `json:"min_irr"`
	P10IRR       float64 `json:"p10_irr"`
	MedianIRR    float64 `json:"median_irr"`
	MeanIRR      float64 `json:"mean_irr"`
	P90IRR       float64 `json:"p90_irr"`
	MaxIRR       float64 `json:"max_irr"`
	SpreadP90P10 float64 `json:"spread_p90_p10"`
	MonthlyDebt  float64 `json:"monthly_debt"`
	TotalValue   float64 `json:"total_value"`
}

func NewRanking(r analysis.RankedPotential) Ranking {
	return Ranking{
		Rank:         r.Rank,
		Name:         r.Name,
		Runs:         r.Runs,
		Undefined:    r.Undefined,
		MinIRR:       r.MinIRR,
		P10IRR:       r.P10IRR,
		MedianIRR:    r.MedianIRR,
		MeanIRR:      r.MeanIRR,
		P90IRR:       r.P90IRR,
		MaxIRR:       r.MaxIRR,
		SpreadP90P10: r.SpreadP90P10,
		MonthlyDebt:  r.MonthlyDebt,
		TotalValue:   r.SaleValue,
	}
}

// PresetInfo represents information about a property preset
type PresetInfo struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	File     string              `json:"file"`
	Property model.PropertyInput `json:"property"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an ErrorResponse.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
