package confirm

import "strings"

// Trigger phrases that arm location-selection mode for the next user
// interaction. The assistant says one of these when it wants the user to
// point at the map instead of typing an address.
var locationTriggers = []string{
	"click on the map",
	"haz clic en el mapa",
}

// ArmsLocationSelect reports whether the accumulated assistant output asks
// the user to pick a point on the map. Matching is case-insensitive and
// independent of any tool call in the same turn.
func ArmsLocationSelect(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range locationTriggers {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
