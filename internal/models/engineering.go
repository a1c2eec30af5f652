package models

// LifeSupport holds atmosphere telemetry from <lifeSupport>
type LifeSupport struct {
	Status      string     `json:"status"`
	Oxygen      *float64   `json:"oxygen"`
	CO2         *float64   `json:"co2"`
	Pressure    *float64   `json:"pressure"`
	Temperature *float64   `json:"temperature"`
	Humidity    *float64   `json:"humidity"`
	Zones       []LifeZone `json:"zones"`
	Scrubbers   []Scrubber `json:"scrubbers"`
}

// LifeZone is one pressurized zone of the ship
type LifeZone struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Oxygen      *float64 `json:"oxygen"`
	CO2         *float64 `json:"co2"`
	Pressure    *float64 `json:"pressure"`
	Temperature *float64 `json:"temperature"`
	Sealed      *bool    `json:"sealed"`
}

// Scrubber is a CO2 scrubber unit
type Scrubber struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	Efficiency *float64 `json:"efficiency"`
	Online     *bool    `json:"online"`
}

// Power holds generation and distribution telemetry from <power>
type Power struct {
	Status    string     `json:"status"`
	Output    *float64   `json:"output"`
	Demand    *float64   `json:"demand"`
	Reserve   *float64   `json:"reserve"`
	Reactors  []Reactor  `json:"reactors"`
	Buses     []PowerBus `json:"buses"`
	Batteries []Battery  `json:"batteries"`
}

// Reactor is a power source
type Reactor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Output      *float64 `json:"output"`
	Capacity    *float64 `json:"capacity"`
	Temperature *float64 `json:"temperature"`
	Online      *bool    `json:"online"`
}

// PowerBus is a distribution bus
type PowerBus struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Load     *float64 `json:"load"`
	Capacity *float64 `json:"capacity"`
}

// Battery is an energy store
type Battery struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Charge   *float64 `json:"charge"`
	Capacity *float64 `json:"capacity"`
	Charging *bool    `json:"charging"`
}

// Thermal holds heat management telemetry from <thermal>
type Thermal struct {
	Status          string        `json:"status"`
	CoreTemperature *float64      `json:"coreTemperature"`
	HullTemperature *float64      `json:"hullTemperature"`
	Radiators       []Radiator    `json:"radiators"`
	Loops           []CoolantLoop `json:"loops"`
}

// Radiator is a heat radiator panel
type Radiator struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Temperature *float64 `json:"temperature"`
	Efficiency  *float64 `json:"efficiency"`
	Deployed    *bool    `json:"deployed"`
}

// CoolantLoop is a coolant circuit
type CoolantLoop struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Temperature *float64 `json:"temperature"`
	Flow        *float64 `json:"flow"`
}

// Propulsion holds sublight drive telemetry from <propulsion>
type Propulsion struct {
	Status    string     `json:"status"`
	Thrust    *float64   `json:"thrust"`
	MaxThrust *float64   `json:"maxThrust"`
	Fuel      *float64   `json:"fuel"`
	Velocity  *float64   `json:"velocity"`
	Heading   *float64   `json:"heading"`
	Engines   []Engine   `json:"engines"`
	Thrusters []Thruster `json:"thrusters"`
}

// Engine is a main engine
type Engine struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Thrust      *float64 `json:"thrust"`
	Temperature *float64 `json:"temperature"`
	Online      *bool    `json:"online"`
}

// Thruster is a maneuvering thruster
type Thruster struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Output *float64 `json:"output"`
}

// FTL holds jump drive telemetry from <ftl>
type FTL struct {
	Status      string    `json:"status"`
	Charge      *float64  `json:"charge"`
	JumpRange   *float64  `json:"jumpRange"`
	Cooldown    *float64  `json:"cooldown"`
	SpoolTime   *float64  `json:"spoolTime"`
	Coordinates string    `json:"coordinates"`
	Coils       []FTLCoil `json:"coils"`
}

// FTLCoil is a jump field coil
type FTLCoil struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Charge    *float64 `json:"charge"`
	Integrity *float64 `json:"integrity"`
	Aligned   *bool    `json:"aligned"`
}

func (l *LifeSupport) clone() *LifeSupport {
	if l == nil {
		return nil
	}
	c := *l
	c.Oxygen = clonePtr(l.Oxygen)
	c.CO2 = clonePtr(l.CO2)
	c.Pressure = clonePtr(l.Pressure)
	c.Temperature = clonePtr(l.Temperature)
	c.Humidity = clonePtr(l.Humidity)
	c.Zones = cloneSlice(l.Zones, func(z LifeZone) LifeZone {
		z.Oxygen = clonePtr(z.Oxygen)
		z.CO2 = clonePtr(z.CO2)
		z.Pressure = clonePtr(z.Pressure)
		z.Temperature = clonePtr(z.Temperature)
		z.Sealed = clonePtr(z.Sealed)
		return z
	})
	c.Scrubbers = cloneSlice(l.Scrubbers, func(s Scrubber) Scrubber {
		s.Efficiency = clonePtr(s.Efficiency)
		s.Online = clonePtr(s.Online)
		return s
	})
	return &c
}

func (p *Power) clone() *Power {
	if p == nil {
		return nil
	}
	c := *p
	c.Output = clonePtr(p.Output)
	c.Demand = clonePtr(p.Demand)
	c.Reserve = clonePtr(p.Reserve)
	c.Reactors = cloneSlice(p.Reactors, func(r Reactor) Reactor {
		r.Output = clonePtr(r.Output)
		r.Capacity = clonePtr(r.Capacity)
		r.Temperature = clonePtr(r.Temperature)
		r.Online = clonePtr(r.Online)
		return r
	})
	c.Buses = cloneSlice(p.Buses, func(b PowerBus) PowerBus {
		b.Load = clonePtr(b.Load)
		b.Capacity = clonePtr(b.Capacity)
		return b
	})
	c.Batteries = cloneSlice(p.Batteries, func(b Battery) Battery {
		b.Charge = clonePtr(b.Charge)
		b.Capacity = clonePtr(b.Capacity)
		b.Charging = clonePtr(b.Charging)
		return b
	})
	return &c
}

func (t *Thermal) clone() *Thermal {
	if t == nil {
		return nil
	}
	c := *t
	c.CoreTemperature = clonePtr(t.CoreTemperature)
	c.HullTemperature = clonePtr(t.HullTemperature)
	c.Radiators = cloneSlice(t.Radiators, func(r Radiator) Radiator {
		r.Temperature = clonePtr(r.Temperature)
		r.Efficiency = clonePtr(r.Efficiency)
		r.Deployed = clonePtr(r.Deployed)
		return r
	})
	c.Loops = cloneSlice(t.Loops, func(l CoolantLoop) CoolantLoop {
		l.Temperature = clonePtr(l.Temperature)
		l.Flow = clonePtr(l.Flow)
		return l
	})
	return &c
}

func (p *Propulsion) clone() *Propulsion {
	if p == nil {
		return nil
	}
	c := *p
	c.Thrust = clonePtr(p.Thrust)
	c.MaxThrust = clonePtr(p.MaxThrust)
	c.Fuel = clonePtr(p.Fuel)
	c.Velocity = clonePtr(p.Velocity)
	c.Heading = clonePtr(p.Heading)
	c.Engines = cloneSlice(p.Engines, func(e Engine) Engine {
		e.Thrust = clonePtr(e.Thrust)
		e.Temperature = clonePtr(e.Temperature)
		e.Online = clonePtr(e.Online)
		return e
	})
	c.Thrusters = cloneSlice(p.Thrusters, func(t Thruster) Thruster {
		t.Output = clonePtr(t.Output)
		return t
	})
	return &c
}

func (f *FTL) clone() *FTL {
	if f == nil {
		return nil
	}
	c := *f
	c.Charge = clonePtr(f.Charge)
	c.JumpRange = clonePtr(f.JumpRange)
	c.Cooldown = clonePtr(f.Cooldown)
	c.SpoolTime = clonePtr(f.SpoolTime)
	c.Coils = cloneSlice(f.Coils, func(coil FTLCoil) FTLCoil {
		coil.Charge = clonePtr(coil.Charge)
		coil.Integrity = clonePtr(coil.Integrity)
		coil.Aligned = clonePtr(coil.Aligned)
		return coil
	})
	return &c
}
