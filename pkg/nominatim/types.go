package nominatim

// Address holds the address fields returned with addressdetails=1.
type Address struct {
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	County        string `json:"county"`
	StateDistrict string `json:"state_district"`
	Suburb        string `json:"suburb"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
}

// Place is a normalized geocoding match.
type Place struct {
	Name        string
	Lat         float64
	Lon         float64
	Address     Address
	CountryCode string
}

// searchRow is the raw jsonv2 search result row.
type searchRow struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Address     Address `json:"address"`
}
