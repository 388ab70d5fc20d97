package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

type DeliveryMode string

const (
	DeliveryModeMapPin  DeliveryMode = "map_pin"
	DeliveryModeAirport DeliveryMode = "airport"
)

// DeliverySelection is a tagged choice between a free-text map-pin location
// and an airport from the fixed list. The tag is decoded once here, at the
// form boundary.
type DeliverySelection struct {
	Mode        DeliveryMode
	Location    string
	AirportCode string
}

type deliverySelectionJSON struct {
	Mode        DeliveryMode `json:"mode"`
	Location    *string      `json:"location,omitempty"`
	AirportCode *string      `json:"airportCode,omitempty"`
}

func (d DeliverySelection) MarshalJSON() ([]byte, error) {
	out := deliverySelectionJSON{Mode: d.Mode}

	switch d.Mode {
	case DeliveryModeMapPin:
		out.Location = &d.Location
	case DeliveryModeAirport:
		out.AirportCode = &d.AirportCode
	}

	return json.Marshal(out)
}

func (d *DeliverySelection) UnmarshalJSON(data []byte) error {
	var in deliverySelectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Mode {
	case DeliveryModeMapPin:
		d.Mode = in.Mode
		if in.Location != nil {
			d.Location = *in.Location
		}
	case DeliveryModeAirport:
		d.Mode = in.Mode
		if in.AirportCode != nil {
			d.AirportCode = *in.AirportCode
		}
	case "":
		*d = DeliverySelection{}
	default:
		return fmt.Errorf("unknown delivery mode %q", in.Mode)
	}

	return nil
}

// IsSet reports whether exactly the field matching the chosen mode is
// meaningfully populated.
func (d DeliverySelection) IsSet() bool {
	switch d.Mode {
	case DeliveryModeMapPin:
		return strings.TrimSpace(d.Location) != ""
	case DeliveryModeAirport:
		return IsAirportCode(d.AirportCode)
	}

	return false
}
