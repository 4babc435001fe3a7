package domain

import "encoding/json"

// Value is a single numeric cell that may be missing. A zero Value is
// missing; use Float(f) to build a defined one.
type Value struct {
	Float64 float64
	Valid   bool
}

// Float builds a defined Value.
func Float(f float64) Value {
	return Value{Float64: f, Valid: true}
}

// MarshalJSON encodes a missing value as null, a defined one as a number.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float64)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Value{Float64: f, Valid: true}
	return nil
}
