package activities

var categoryLabels = map[string]string{
	"backcountry_skiing": "BC Ski",
	"resort_skiing":      "Resort Ski",
	"walking":            "Walk",
	"cycling":            "Road Bike",
	"hiking":             "Hike",
	"running":            "City Run",
	"multi_sport":        "MURPH",
	"trail_running":      "Trail Run",
}

// MapCategory returns the display label for a raw activity type key.
// Keys without a label are returned unchanged.
func MapCategory(rawKey string) string {
	if label, ok := categoryLabels[rawKey]; ok {
		return label
	}
	return rawKey
}
