package stations

import (
	"github.com/terra-clan/bridge-console/internal/models"
)

var statusTones = map[string]models.Tone{
	"online":      models.ToneOK,
	"nominal":     models.ToneOK,
	"active":      models.ToneOK,
	"ready":       models.ToneOK,
	"done":        models.ToneOK,
	"closed":      models.ToneOK,
	"standby":     models.ToneOK,
	"monitoring":  models.ToneOK,
	"warning":     models.ToneWarning,
	"degraded":    models.ToneWarning,
	"repairing":   models.ToneWarning,
	"in progress": models.ToneWarning,
	"maintenance": models.ToneWarning,
	"pending":     models.ToneWarning,
	"open":        models.ToneWarning,
	"sealed":      models.ToneWarning,
	"low":         models.ToneOK,
	"medium":      models.ToneWarning,
	"high":        models.ToneCritical,
	"damaged":     models.ToneCritical,
	"critical":    models.ToneCritical,
	"breached":    models.ToneCritical,
	"destroyed":   models.ToneCritical,
	"offline":     models.ToneOffline,
	"inactive":    models.ToneOffline,
}

// statusTone maps a normalized status onto a display tone
func statusTone(status string) models.Tone {
	if tone, ok := statusTones[status]; ok {
		return tone
	}
	return models.ToneUnknown
}

// percentTone grades a 0-100 reading where higher is better
func percentTone(v *float64) models.Tone {
	switch {
	case v == nil:
		return models.ToneUnknown
	case *v < 25:
		return models.ToneCritical
	case *v < 60:
		return models.ToneWarning
	default:
		return models.ToneOK
	}
}

// ratioTone grades load against capacity where lower is better
func ratioTone(load, capacity *float64) models.Tone {
	if load == nil || capacity == nil || *capacity <= 0 {
		return models.ToneUnknown
	}
	ratio := *load / *capacity
	switch {
	case ratio >= 0.95:
		return models.ToneCritical
	case ratio >= 0.8:
		return models.ToneWarning
	default:
		return models.ToneOK
	}
}

var toneRank = map[models.Tone]int{
	models.ToneUnknown:  0,
	models.ToneOK:       1,
	models.ToneWarning:  2,
	models.ToneOffline:  3,
	models.ToneCritical: 4,
}

// worst returns the most severe tone; unknown only wins when nothing else is known
func worst(tones ...models.Tone) models.Tone {
	result := models.ToneUnknown
	for _, t := range tones {
		if toneRank[t] > toneRank[result] {
			result = t
		}
	}
	return result
}
