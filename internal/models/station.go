package models

// Tone is the display severity of a value or panel
type Tone string

const (
	ToneOK       Tone = "ok"
	ToneWarning  Tone = "warning"
	ToneCritical Tone = "critical"
	ToneOffline  Tone = "offline"
	ToneUnknown  Tone = "unknown"
)

// Station describes one bridge console (e.g., helm, tactical)
type Station struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// Panel is the view model rendered for one station
type Panel struct {
	Station     string   `json:"station"`
	Title       string   `json:"title"`
	Tone        Tone     `json:"tone"`
	Metrics     []Metric `json:"metrics"`
	Rows        []Row    `json:"rows"`
	Alerts      []string `json:"alerts"`
	Unavailable bool     `json:"unavailable,omitempty"`
	Message     string   `json:"message,omitempty"`
}

// Metric is a single gauge on a panel
type Metric struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	Unit  string   `json:"unit,omitempty"`
	Tone  Tone     `json:"tone"`
}

// Row is a list entry on a panel; damage trees nest through Children
type Row struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Status   string `json:"status"`
	Tone     Tone   `json:"tone"`
	Detail   string `json:"detail,omitempty"`
	Children []Row  `json:"children,omitempty"`
}
