package scenario

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber accepts "84.5" and "84,5". Empty, invalid and non-finite
// input yields nil.
func parseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	// strconv accepts hex floats and the words inf/nan; scenario files never do
	if strings.ContainsAny(s, "xXpP_") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

var (
	truthy = map[string]bool{"true": true, "1": true, "yes": true, "y": true, "on": true, "ja": true, "j": true, "an": true}
	falsy  = map[string]bool{"false": true, "0": true, "no": true, "n": true, "off": true, "nein": true, "aus": true}
)

// parseBool is tri-state: anything outside the vocabulary is nil, not false
func parseBool(raw string) *bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	var v bool
	switch {
	case truthy[s]:
		v = true
	case falsy[s]:
		v = false
	default:
		return nil
	}
	return &v
}

// statusAliases maps legacy and German vocabulary onto the canonical tokens
var statusAliases = map[string]string{
	"betriebsbereit": "online",
	"aktiv":          "active",
	"inaktiv":        "inactive",
	"warnung":        "warning",
	"kritisch":       "critical",
	"beschaedigt":    "damaged",
	"beschädigt":     "damaged",
	"zerstoert":      "destroyed",
	"zerstört":       "destroyed",
	"ausgefallen":    "offline",
	"aus":            "offline",
	"reparatur":      "repairing",
	"wartend":        "pending",
	"erledigt":       "done",
	"hoch":           "high",
	"mittel":         "medium",
	"niedrig":        "low",
}

// normalizeStatus lowercases enumerable text. Unknown values are kept;
// deciding how to show them is up to the station panels.
func normalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := statusAliases[s]; ok {
		return alias
	}
	return s
}
