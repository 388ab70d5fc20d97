package schema

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Airports the marketplace delivers vehicles to. The delivery form only
// accepts codes from this list.
var Airports = []Airport{
	{Code: "TLL", Name: "Tallinn Lennart Meri"},
	{Code: "RIX", Name: "Riga International"},
	{Code: "VNO", Name: "Vilnius International"},
	{Code: "HEL", Name: "Helsinki-Vantaa"},
	{Code: "ARN", Name: "Stockholm Arlanda"},
	{Code: "CPH", Name: "Copenhagen Kastrup"},
	{Code: "WAW", Name: "Warsaw Chopin"},
	{Code: "BER", Name: "Berlin Brandenburg"},
}

func IsAirportCode(code string) bool {
	for _, airport := range Airports {
		if airport.Code == code {
			return true
		}
	}

	return false
}
