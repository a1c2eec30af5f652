package stations

import (
	"fmt"
	"strings"

	"github.com/terra-clan/bridge-console/internal/models"
)

func metric(label string, v *float64, unit string, tone models.Tone) models.Metric {
	return models.Metric{Label: label, Value: v, Unit: unit, Tone: tone}
}

// neutral is used for readings that have no good/bad direction
func neutral(label string, v *float64, unit string) models.Metric {
	tone := models.ToneOK
	if v == nil {
		tone = models.ToneUnknown
	}
	return metric(label, v, unit, tone)
}

func row(id, label, status string, detail ...string) models.Row {
	return models.Row{
		ID:     id,
		Label:  label,
		Status: status,
		Tone:   statusTone(status),
		Detail: strings.Join(nonEmpty(detail), " · "),
	}
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func formatValue(label string, v *float64, unit string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%s %s%s", label, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", *v), "0"), "."), unit)
}

func panelTone(metrics []models.Metric, rows []models.Row) models.Tone {
	tones := make([]models.Tone, 0, len(metrics)+len(rows))
	for _, m := range metrics {
		tones = append(tones, m.Tone)
	}
	for _, r := range rows {
		tones = append(tones, r.Tone)
	}
	return worst(tones...)
}

func alertsFor(rows []models.Row) []string {
	var alerts []string
	for _, r := range rows {
		if r.Tone == models.ToneCritical || r.Tone == models.ToneOffline {
			alerts = append(alerts, fmt.Sprintf("%s: %s", r.Label, r.Status))
		}
	}
	return alerts
}

func buildBridge(sc *models.Scenario) (models.Panel, error) {
	rows := make([]models.Row, 0, len(sc.Systems))
	var online, total float64
	for _, sys := range sc.Systems {
		r := row(sys.ID, sys.Name, sys.Status,
			formatValue("PWR", sys.Power, "%"),
			formatValue("INT", sys.Integrity, "%"),
			sys.Note,
		)
		if r.Tone == models.ToneUnknown {
			r.Tone = percentTone(sys.Integrity)
		}
		rows = append(rows, r)

		total++
		if r.Tone == models.ToneOK {
			online++
		}
	}

	var readiness *float64
	if total > 0 {
		v := online / total * 100
		readiness = &v
	}

	metrics := []models.Metric{
		metric("Readiness", readiness, "%", percentTone(readiness)),
	}
	if sc.Defense.Hull != nil {
		metrics = append(metrics, metric("Hull", sc.Defense.Hull.Integrity, "%", percentTone(sc.Defense.Hull.Integrity)))
	}
	if sc.Defense.Shields != nil {
		metrics = append(metrics, metric("Shields", sc.Defense.Shields.Strength, "%", percentTone(sc.Defense.Shields.Strength)))
	}

	return models.Panel{
		Tone:    panelTone(metrics, rows),
		Metrics: metrics,
		Rows:    rows,
		Alerts:  alertsFor(rows),
	}, nil
}

func damageRows(nodes []models.DamageNode) []models.Row {
	rows := make([]models.Row, 0, len(nodes))
	for _, n := range nodes {
		r := row(n.ID, n.Name, n.Status, formatValue("INT", n.Integrity, "%"), n.Note)
		if r.Tone == models.ToneUnknown {
			r.Tone = percentTone(n.Integrity)
		}
		if len(n.Children) > 0 {
			r.Children = damageRows(n.Children)
		}
		rows = append(rows, r)
	}
	return rows
}

func buildDamageControl(sc *models.Scenario) (models.Panel, error) {
	dc := sc.DamageControl
	rows := damageRows(dc.Systems)

	var alerts []string
	openReports := 0.0
	for _, rep := range dc.Reports {
		if rep.Status != "done" && rep.Status != "closed" {
			openReports++
		}
		if statusTone(rep.Severity) == models.ToneCritical {
			alerts = append(alerts, fmt.Sprintf("%s: %s", rep.System, rep.Text))
		}
	}

	var missingParts float64
	for _, rp := range dc.Repairs {
		for _, part := range rp.Parts {
			if part.Available != nil && !*part.Available {
				missingParts++
			}
		}
	}

	activeRepairs := float64(len(dc.Repairs))
	reportsTone := models.ToneOK
	if openReports > 0 {
		reportsTone = models.ToneWarning
	}
	partsTone := models.ToneOK
	if missingParts > 0 {
		partsTone = models.ToneWarning
	}

	metrics := []models.Metric{
		metric("Open reports", &openReports, "", reportsTone),
		neutral("Repairs", &activeRepairs, ""),
		metric("Missing parts", &missingParts, "", partsTone),
	}

	return models.Panel{
		Tone:    panelTone(metrics, rows),
		Metrics: metrics,
		Rows:    rows,
		Alerts:  alerts,
	}, nil
}

func buildEngineering(sc *models.Scenario) (models.Panel, error) {
	if sc.Power == nil && sc.Thermal == nil {
		return models.Panel{}, fmt.Errorf("engineering: %w", errNoData)
	}

	var metrics []models.Metric
	var rows []models.Row

	if p := sc.Power; p != nil {
		metrics = append(metrics,
			neutral("Output", p.Output, " MW"),
			metric("Demand", p.Demand, " MW", ratioTone(p.Demand, p.Output)),
			neutral("Reserve", p.Reserve, " MW"),
		)
		for _, r := range p.Reactors {
			rows = append(rows, row(r.ID, r.Name, r.Status, formatValue("OUT", r.Output, " MW")))
		}
		for _, b := range p.Buses {
			r := row(b.ID, b.Name, b.Status, formatValue("LOAD", b.Load, " MW"))
			r.Tone = worst(r.Tone, ratioTone(b.Load, b.Capacity))
			rows = append(rows, r)
		}
		for _, b := range p.Batteries {
			r := row(b.ID, b.Name, b.Status, formatValue("CHG", b.Charge, "%"))
			r.Tone = worst(r.Tone, percentTone(b.Charge))
			rows = append(rows, r)
		}
	}

	if t := sc.Thermal; t != nil {
		metrics = append(metrics,
			neutral("Core", t.CoreTemperature, " °C"),
			neutral("Hull", t.HullTemperature, " °C"),
		)
		for _, r := range t.Radiators {
			rows = append(rows, row(r.ID, r.Name, r.Status, formatValue("EFF", r.Efficiency, "%")))
		}
		for _, l := range t.Loops {
			rows = append(rows, row(l.ID, l.Name, l.Status, formatValue("T", l.Temperature, " °C")))
		}
	}

	return models.Panel{
		Tone:    panelTone(metrics, rows),
		Metrics: metrics,
		Rows:    rows,
		Alerts:  alertsFor(rows),
	}, nil
}

func buildLifeSupport(sc *models.Scenario) (models.Panel, error) {
	ls := sc.LifeSupport
	if ls == nil {
		return models.Panel{}, fmt.Errorf("life support: %w", errNoData)
	}

	metrics := []models.Metric{
		metric("O2", ls.Oxygen, "%", oxygenTone(ls.Oxygen)),
		metric("CO2", ls.CO2, "%", co2Tone(ls.CO2)),
		neutral("Pressure", ls.Pressure, " kPa"),
		neutral("Temperature", ls.Temperature, " °C"),
		neutral("Humidity", ls.Humidity, "%"),
	}

	rows := make([]models.Row, 0, len(ls.Zones)+len(ls.Scrubbers))
	for _, z := range ls.Zones {
		r := row(z.ID, z.Name, z.Status, formatValue("O2", z.Oxygen, "%"), formatValue("P", z.Pressure, " kPa"))
		r.Tone = worst(r.Tone, oxygenTone(z.Oxygen), co2Tone(z.CO2))
		rows = append(rows, r)
	}
	for _, s := range ls.Scrubbers {
		rows = append(rows, row(s.ID, s.Name, s.Status, formatValue("EFF", s.Efficiency, "%")))
	}

	return models.Panel{
		Tone:    panelTone(metrics, rows),
		Metrics: metrics,
		Rows:    rows,
		Alerts:  alertsFor(rows),
	}, nil
}

func oxygenTone(v *float64) models.Tone {
	switch {
	case v == nil:
		return models.ToneUnknown
	case *v < 17:
		return models.ToneCritical
	case *v < 19.5:
		return models.ToneWarning
	default:
		return models.ToneOK
	}
}

func co2Tone(v *float64) models.Tone {
	switch {
	case v == nil:
		return models.ToneUnknown
	case *v >= 2:
		return models.ToneCritical
	case *v >= 1:
		return models.ToneWarning
	default:
		return models.ToneOK
	}
}

func buildHelm(sc *models.Scenario) (models.Panel, error) {
	if sc.Propulsion == nil && sc.FTL == nil {
		return models.Panel{}, fmt.Errorf("helm: %w", errNoData)
	}

	var metrics []models.Metric
	var rows []models.Row

	if p := sc.Propulsion; p != nil {
		metrics = append(metrics,
			neutral("Thrust", p.Thrust, "%"),
			neutral("Velocity", p.Velocity, " m/s"),
			neutral("Heading", p.Heading, "°"),
			metric("Fuel", p.Fuel, "%", percentTone(p.Fuel)),
		)
		for _, e := range p.Engines {
			rows = append(rows, row(e.ID, e.Name, e.Status, formatValue("THR", e.Thrust, "%")))
		}
		for _, t := range p.Thrusters {
			rows = append(rows, row(t.ID, t.Name, t.Status))
		}
	}

	if f := sc.FTL; f != nil {
		metrics = append(metrics,
			neutral("FTL charge", f.Charge, "%"),
			neutral("Jump range", f.JumpRange, " ly"),
		)
		for _, c := range f.Coils {
			r := row(c.ID, c.Name, c.Status, formatValue("CHG", c.Charge, "%"))
			if c.Aligned != nil && !*c.Aligned {
				r.Tone = worst(r.Tone, models.ToneWarning)
				r.Detail = strings.Join(nonEmpty([]string{r.Detail, "misaligned"}), " · ")
			}
			rows = append(rows, r)
		}
	}

	return models.Panel{
		Tone:    panelTone(metrics, rows),
		Metrics: metrics,
		Rows:    rows,
		Alerts:  alertsFor(rows),
	}, nil
}

func buildTactical(sc *models.Scenario) (models.Panel, error) {
	d := sc.Defense
	if d.Shields == nil && d.Hull == nil {
		return models.Panel{}, fmt.Errorf("tactical: %w", errNoData)
	}

	var metrics []models.Metric
	var rows []models.Row

	if s := d.Shields; s != nil {
		metrics = append(metrics,
			metric("Shields", s.Strength, "%", percentTone(s.Strength)),
			neutral("Frequency", s.Frequency, " THz"),
		)
		for _, sec := range s.Sectors {
			r := row(sec.ID, sec.Name, sec.Status, formatValue("STR", sec.Strength, "%"))
			r.Tone = worst(r.Tone, percentTone(sec.Strength))
			rows = append(rows, r)
		}
	}

	if h := d.Hull; h != nil {
		metrics = append(metrics,
			metric("Hull", h.Integrity, "%", percentTone(h.Integrity)),
			neutral("Armor", h.Armor, "%"),
		)
		for _, sec := range h.Sections {
			r := row(sec.ID, sec.Name, sec.Status, formatValue("INT", sec.Integrity, "%"))
			if sec.Breached != nil && *sec.Breached {
				r.Tone = models.ToneCritical
				r.Detail = strings.Join(nonEmpty([]string{r.Detail, "breach"}), " · ")
			}
			rows = append(rows, r)
		}
	}

	return models.Panel{
		Tone:    panelTone(metrics, rows),
		Metrics: metrics,
		Rows:    rows,
		Alerts:  alertsFor(rows),
	}, nil
}
