package schema

import "fmt"

type RoundedFloat float64

func (f RoundedFloat) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%.2f", f)), nil
}

// Amount is a monetary value in currency minor units (cents).
// All money arithmetic happens on this type, never on floats.
type Amount int64

func (a Amount) Major() RoundedFloat {
	return RoundedFloat(float64(a) / 100)
}
