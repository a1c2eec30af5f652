package models

// Scenario is the root of the scenario document for one simulated session.
// A loaded Scenario is shared between callers and must not be mutated;
// use Clone to obtain an independent copy.
type Scenario struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Ship          Ship          `json:"ship"`
	Systems       []System      `json:"systems"`
	DamageControl DamageControl `json:"damageControl"`
	LifeSupport   *LifeSupport  `json:"lifeSupport"`
	Power         *Power        `json:"power"`
	Thermal       *Thermal      `json:"thermal"`
	Propulsion    *Propulsion   `json:"propulsion"`
	FTL           *FTL          `json:"ftl"`
	Defense       Defense       `json:"defense"`
}

// Ship holds the header attributes of <ship>
type Ship struct {
	Name     string `json:"name"`
	Class    string `json:"class"`
	Registry string `json:"registry"`
}

// System represents one ship system from <systems>
type System struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Power       *float64 `json:"power"`
	Integrity   *float64 `json:"integrity"`
	Load        *float64 `json:"load"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Note        string   `json:"note"`
}

// FindSystem returns the system with the given id
func (s *Scenario) FindSystem(id string) *System {
	if s == nil {
		return nil
	}
	for i := range s.Systems {
		if s.Systems[i].ID == id {
			return &s.Systems[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the scenario
func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	return &Scenario{
		ID:            s.ID,
		Name:          s.Name,
		Ship:          s.Ship,
		Systems:       cloneSlice(s.Systems, System.clone),
		DamageControl: s.DamageControl.clone(),
		LifeSupport:   s.LifeSupport.clone(),
		Power:         s.Power.clone(),
		Thermal:       s.Thermal.clone(),
		Propulsion:    s.Propulsion.clone(),
		FTL:           s.FTL.clone(),
		Defense:       s.Defense.clone(),
	}
}

func (s System) clone() System {
	s.Power = clonePtr(s.Power)
	s.Integrity = clonePtr(s.Integrity)
	s.Load = clonePtr(s.Load)
	return s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneSlice keeps the nil/empty distinction of the source slice
func cloneSlice[T any](src []T, fn func(T) T) []T {
	if src == nil {
		return nil
	}
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = fn(v)
	}
	return out
}
