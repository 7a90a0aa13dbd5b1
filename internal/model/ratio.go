package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Ratio is a percentage or ratio that may be undefined because its
// denominator was zero. Undefined values are NaN internally and encode
// as JSON null, so they are never confused with a real 0.
type Ratio float64

// Undefined returns the undefined Ratio.
func Undefined() Ratio {
	return Ratio(math.NaN())
}

// Defined reports whether r holds a finite value.
func (r Ratio) Defined() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float64 returns the raw value, NaN when undefined.
func (r Ratio) Float64() float64 {
	return float64(r)
}

// MarshalJSON encodes undefined values as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(r), 'f', -1, 64)), nil
}

// UnmarshalJSON decodes null as undefined.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}
