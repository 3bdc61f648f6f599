package overpass

// ActivitySignals holds the point-of-interest signals for one destination.
type ActivitySignals struct {
	PoiCount    int
	SampleNames []string
}

// interpreterResponse is the raw Overpass interpreter response body.
type interpreterResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}
