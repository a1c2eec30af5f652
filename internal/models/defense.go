package models

// Defense groups <shields> and <hull>; either may be absent
type Defense struct {
	Shields *Shields `json:"shields"`
	Hull    *Hull    `json:"hull"`
}

// Shields holds deflector telemetry
type Shields struct {
	Status    string         `json:"status"`
	Strength  *float64       `json:"strength"`
	Capacity  *float64       `json:"capacity"`
	Regen     *float64       `json:"regen"`
	Frequency *float64       `json:"frequency"`
	Sectors   []ShieldSector `json:"sectors"`
}

// ShieldSector is one shield facing
type ShieldSector struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Strength *float64 `json:"strength"`
}

// Hull holds structural telemetry
type Hull struct {
	Status    string        `json:"status"`
	Integrity *float64      `json:"integrity"`
	Armor     *float64      `json:"armor"`
	Breaches  *float64      `json:"breaches"`
	Sections  []HullSection `json:"sections"`
}

// HullSection is one structural section of the hull
type HullSection struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Integrity *float64 `json:"integrity"`
	Breached  *bool    `json:"breached"`
}

func (d Defense) clone() Defense {
	var out Defense
	if d.Shields != nil {
		s := *d.Shields
		s.Strength = clonePtr(d.Shields.Strength)
		s.Capacity = clonePtr(d.Shields.Capacity)
		s.Regen = clonePtr(d.Shields.Regen)
		s.Frequency = clonePtr(d.Shields.Frequency)
		s.Sectors = cloneSlice(d.Shields.Sectors, func(sec ShieldSector) ShieldSector {
			sec.Strength = clonePtr(sec.Strength)
			return sec
		})
		out.Shields = &s
	}
	if d.Hull != nil {
		h := *d.Hull
		h.Integrity = clonePtr(d.Hull.Integrity)
		h.Armor = clonePtr(d.Hull.Armor)
		h.Breaches = clonePtr(d.Hull.Breaches)
		h.Sections = cloneSlice(d.Hull.Sections, func(sec HullSection) HullSection {
			sec.Integrity = clonePtr(sec.Integrity)
			sec.Breached = clonePtr(sec.Breached)
			return sec
		})
		out.Hull = &h
	}
	return out
}
