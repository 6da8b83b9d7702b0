package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// SizePair holds the per-size amounts of a size-variant price. The size set
// is closed: small and large.
type SizePair struct {
	Small float64 `json:"small"`
	Large float64 `json:"large"`
}

// Price is either a single flat amount or a small/large pair. The variant is
// decided once, when the value is decoded, and callers branch on Sized()
// instead of re-inspecting raw JSON.
type Price struct {
	Flat  float64
	Sizes *SizePair
}

func FlatPrice(amount float64) Price {
	return Price{Flat: amount}
}

func SizedPrice(small, large float64) Price {
	return Price{Sizes: &SizePair{Small: small, Large: large}}
}

func (p Price) Sized() bool {
	return p.Sizes != nil
}

// ForSize returns the amount for the given size label, or the flat amount
// when the price has no sizes. An unknown label falls back to small.
func (p Price) ForSize(size string) float64 {
	if p.Sizes == nil {
		return p.Flat
	}
	if size == "large" {
		return p.Sizes.Large
	}
	return p.Sizes.Small
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.Sizes != nil {
		return json.Marshal(p.Sizes)
	}
	return json.Marshal(p.Flat)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err == nil {
		*p = Price{Flat: amount}
		return nil
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("price must be a number or a size map")
	}
	small, okSmall := raw["small"]
	large, okLarge := raw["large"]
	if !okSmall || !okLarge {
		return fmt.Errorf("sized price requires both small and large")
	}
	*p = Price{Sizes: &SizePair{Small: small, Large: large}}
	return nil
}

func (p Price) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Price) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Price{}
		return nil
	case []byte:
		return p.UnmarshalJSON(v)
	case string:
		return p.UnmarshalJSON([]byte(v))
	default:
		return errors.New("unsupported source type for price")
	}
}

// NullPrice wraps an optional Price column (original_price is NULL unless
// the item is discounted).
type NullPrice struct {
	Price Price
	Valid bool
}

func (p NullPrice) Value() (driver.Value, error) {
	if !p.Valid {
		return nil, nil
	}
	return p.Price.Value()
}

func (p *NullPrice) Scan(src interface{}) error {
	if src == nil {
		*p = NullPrice{}
		return nil
	}
	if err := p.Price.Scan(src); err != nil {
		return err
	}
	p.Valid = true
	return nil
}

func (p NullPrice) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return p.Price.MarshalJSON()
}

func (p *NullPrice) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = NullPrice{}
		return nil
	}
	if err := p.Price.UnmarshalJSON(data); err != nil {
		return err
	}
	p.Valid = true
	return nil
}
