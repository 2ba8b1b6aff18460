package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

// seriesRequest is the body of POST /api/series and PUT /api/series/:id.
type seriesRequest struct {
	Name        string              `json:"name" validate:"required,max=100"`
	Description string              `json:"description" validate:"max=1000"`
	Color       string              `json:"color" validate:"omitempty,hexcolor,len=7"`
	Icon        string              `json:"icon" validate:"max=50"`
	MinValue    decimal.NullDecimal `json:"minValue" validate:"omitempty,digits=3.2"`
	MaxValue    decimal.NullDecimal `json:"maxValue" validate:"omitempty,digits=3.2"`
}

func (r seriesRequest) toInput() ports.SeriesInput {
	return ports.SeriesInput{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		MinValue:    r.MinValue,
		MaxValue:    r.MaxValue,
	}
}

type seriesResponse struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description,omitempty"`
	Color             string       `json:"color,omitempty"`
	Icon              string       `json:"icon,omitempty"`
	MinValue          *json.Number `json:"minValue"`
	MaxValue          *json.Number `json:"maxValue"`
	CreatedBy         string       `json:"createdBy"`
	CreatedByUsername string       `json:"createdByUsername"`
	CreatedAt         time.Time    `json:"createdAt"`
}

func toSeriesResponse(s *domain.Series) seriesResponse {
	return seriesResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Color:             s.Color,
		Icon:              s.Icon,
		MinValue:          nullNumber(s.MinValue),
		MaxValue:          nullNumber(s.MaxValue),
		CreatedBy:         s.CreatedBy,
		CreatedByUsername: s.CreatedByUsername,
		CreatedAt:         s.CreatedAt,
	}
}

func toSeriesResponses(list []*domain.Series) []seriesResponse {
	out := make([]seriesResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSeriesResponse(s))
	}
	return out
}

// number renders d as a bare JSON number with at least two decimal places.
func number(d decimal.Decimal) json.Number {
	return json.Number(domain.FormatDecimal(d))
}

func nullNumber(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := number(d.Decimal)
	return &n
}
