package scenario

import (
	"github.com/terra-clan/bridge-console/internal/models"
)

// Fallback returns a fresh deep copy of the built-in scenario. The bridge
// serves it whenever the live document cannot be fetched or parsed.
func Fallback() *models.Scenario {
	return fallbackScenario.Clone()
}

func num(v float64) *float64 { return &v }

func yes() *bool { return boolPtr(true) }

func no() *bool { return boolPtr(false) }

func boolPtr(v bool) *bool { return &v }

var fallbackScenario = &models.Scenario{
	ID:   "fallback",
	Name: "Standby Drill",
	Ship: models.Ship{Name: "ISV Meridian", Class: "Corvette", Registry: "NCC-4471"},
	Systems: []models.System{
		{ID: "reactor", Name: "Main Reactor", Status: "online", Power: num(92), Integrity: num(97), Load: num(68), Category: "power", Location: "Deck 4", Description: "Fusion core feeding the primary bus"},
		{ID: "shields", Name: "Deflector Shields", Status: "warning", Power: num(74), Integrity: num(81), Load: num(55), Category: "defense", Location: "Deck 2", Description: "Forward and aft shield emitters", Note: "Aft emitter recalibrating"},
		{ID: "engines", Name: "Sublight Engines", Status: "online", Power: num(60), Integrity: num(94), Load: num(40), Category: "propulsion", Location: "Deck 5"},
		{ID: "lifesupport", Name: "Life Support", Status: "online", Power: num(35), Integrity: num(99), Load: num(30), Category: "environment", Location: "Deck 3"},
		{ID: "ftl", Name: "FTL Drive", Status: "standby", Power: num(12), Integrity: num(88), Load: num(5), Category: "propulsion", Location: "Deck 5"},
		{ID: "sensors", Name: "Sensor Array", Status: "damaged", Power: num(48), Integrity: num(52), Load: num(44), Category: "sensors", Location: "Deck 1", Note: "Port array offline"},
	},
	DamageControl: models.DamageControl{
		Reports: []models.DamageReport{
			{ID: "dr-1", System: "sensors", Severity: "high", Status: "open", Location: "Deck 1, Frame 12", ETA: "00:45", Text: "Port sensor array lost power after micrometeorite strike"},
			{ID: "dr-2", System: "shields", Severity: "medium", Status: "repairing", Location: "Deck 2, Frame 30", ETA: "00:20", Text: "Aft emitter phase drift"},
			{ID: "dr-3", System: "reactor", Severity: "low", Status: "monitoring", Location: "Deck 4", Text: "Coolant pressure fluctuation"},
		},
		Systems: []models.DamageNode{
			{ID: "sensors", Name: "Sensor Array", Status: "damaged", Integrity: num(52), Power: num(48), Children: []models.DamageNode{
				{ID: "sensors-port", Name: "Port Array", Status: "offline", Integrity: num(18), Power: num(0), Note: "Hull plating punctured", Children: []models.DamageNode{
					{ID: "sensors-port-dish", Name: "Dish Assembly", Status: "destroyed", Integrity: num(0), Children: []models.DamageNode{}},
					{ID: "sensors-port-relay", Name: "Signal Relay", Status: "damaged", Integrity: num(35), Power: num(0), Children: []models.DamageNode{}},
				}},
				{ID: "sensors-starboard", Name: "Starboard Array", Status: "online", Integrity: num(96), Power: num(48), Children: []models.DamageNode{}},
			}},
			{ID: "shields", Name: "Deflector Shields", Status: "warning", Integrity: num(81), Power: num(74), Children: []models.DamageNode{
				{ID: "shields-fore", Name: "Forward Emitter", Status: "online", Integrity: num(95), Power: num(40), Children: []models.DamageNode{}},
				{ID: "shields-aft", Name: "Aft Emitter", Status: "repairing", Integrity: num(67), Power: num(34), Note: "Phase drift", Children: []models.DamageNode{}},
			}},
		},
		Bypasses: []models.Bypass{
			{ID: "bp-1", From: "aux-bus", To: "sensors-starboard", Status: "active", Capacity: num(20), Active: yes(), Note: "Keeps starboard array at full gain"},
			{ID: "bp-2", From: "battery-b", To: "shields-aft", Status: "ready", Capacity: num(15), Active: no()},
		},
		Repairs: []models.Repair{
			{ID: "rp-1", System: "sensors", Status: "in progress", Priority: "high", Progress: num(35), ETA: "00:45", Crew: "Team Bravo", Parts: []models.RepairPart{
				{ID: "pt-relay", Name: "Signal Relay", Quantity: num(1), Available: yes()},
				{ID: "pt-dish", Name: "Dish Segment", Quantity: num(3), Available: no()},
			}},
			{ID: "rp-2", System: "shields", Status: "repairing", Priority: "medium", Progress: num(70), ETA: "00:20", Crew: "Team Alpha", Parts: []models.RepairPart{
				{ID: "pt-crystal", Name: "Phase Crystal", Quantity: num(1), Available: yes()},
			}},
		},
		Conduits: []models.Conduit{
			{ID: "cd-main", Name: "Main Trunk", Status: "online", Load: num(68), Capacity: num(100), Switches: []models.ConduitSwitch{
				{ID: "sw-1", Name: "Reactor Tie", Position: "closed", Closed: yes()},
				{ID: "sw-2", Name: "Sensor Feed", Position: "open", Closed: no()},
			}},
			{ID: "cd-aux", Name: "Auxiliary Loop", Status: "warning", Load: num(82), Capacity: num(90), Switches: []models.ConduitSwitch{
				{ID: "sw-3", Name: "Battery Tie", Position: "closed", Closed: yes()},
			}},
		},
		Inventory: []models.InventoryItem{
			{ID: "inv-relay", Name: "Signal Relay", Quantity: num(4), Unit: "pcs", Location: "Stores A"},
			{ID: "inv-crystal", Name: "Phase Crystal", Quantity: num(2), Unit: "pcs", Location: "Stores B"},
			{ID: "inv-sealant", Name: "Hull Sealant", Quantity: num(12.5), Unit: "l", Location: "Stores A"},
		},
	},
	LifeSupport: &models.LifeSupport{
		Status: "online", Oxygen: num(20.9), CO2: num(0.4), Pressure: num(101.3), Temperature: num(21.5), Humidity: num(45),
		Zones: []models.LifeZone{
			{ID: "bridge", Name: "Bridge", Status: "online", Oxygen: num(21), CO2: num(0.3), Pressure: num(101.3), Temperature: num(21), Sealed: no()},
			{ID: "engineering", Name: "Engineering", Status: "warning", Oxygen: num(19.8), CO2: num(0.9), Pressure: num(100.8), Temperature: num(27.5), Sealed: no()},
			{ID: "deck1-fwd", Name: "Deck 1 Forward", Status: "sealed", Oxygen: num(16.2), CO2: num(1.2), Pressure: num(88.4), Temperature: num(12), Sealed: yes()},
		},
		Scrubbers: []models.Scrubber{
			{ID: "scr-1", Name: "Scrubber 1", Status: "online", Efficiency: num(94), Online: yes()},
			{ID: "scr-2", Name: "Scrubber 2", Status: "maintenance", Efficiency: num(0), Online: no()},
		},
	},
	Power: &models.Power{
		Status: "online", Output: num(920), Demand: num(780), Reserve: num(140),
		Reactors: []models.Reactor{
			{ID: "reactor-main", Name: "Main Reactor", Status: "online", Output: num(880), Capacity: num(1000), Temperature: num(640), Online: yes()},
			{ID: "reactor-aux", Name: "Auxiliary Reactor", Status: "standby", Output: num(40), Capacity: num(250), Temperature: num(210), Online: yes()},
		},
		Buses: []models.PowerBus{
			{ID: "bus-primary", Name: "Primary Bus", Status: "online", Load: num(610), Capacity: num(800)},
			{ID: "bus-aux", Name: "Auxiliary Bus", Status: "warning", Load: num(170), Capacity: num(200)},
		},
		Batteries: []models.Battery{
			{ID: "battery-a", Name: "Battery A", Status: "online", Charge: num(88), Capacity: num(500), Charging: yes()},
			{ID: "battery-b", Name: "Battery B", Status: "online", Charge: num(64), Capacity: num(500), Charging: no()},
		},
	},
	Thermal: &models.Thermal{
		Status: "online", CoreTemperature: num(640), HullTemperature: num(-42),
		Radiators: []models.Radiator{
			{ID: "rad-port", Name: "Port Radiator", Status: "online", Temperature: num(310), Efficiency: num(91), Deployed: yes()},
			{ID: "rad-stbd", Name: "Starboard Radiator", Status: "online", Temperature: num(305), Efficiency: num(93), Deployed: yes()},
		},
		Loops: []models.CoolantLoop{
			{ID: "loop-primary", Name: "Primary Loop", Status: "online", Temperature: num(85), Flow: num(120)},
			{ID: "loop-secondary", Name: "Secondary Loop", Status: "warning", Temperature: num(96), Flow: num(74)},
		},
	},
	Propulsion: &models.Propulsion{
		Status: "online", Thrust: num(40), MaxThrust: num(100), Fuel: num(76), Velocity: num(1250), Heading: num(273),
		Engines: []models.Engine{
			{ID: "engine-port", Name: "Port Engine", Status: "online", Thrust: num(41), Temperature: num(1100), Online: yes()},
			{ID: "engine-stbd", Name: "Starboard Engine", Status: "online", Thrust: num(39), Temperature: num(1085), Online: yes()},
		},
		Thrusters: []models.Thruster{
			{ID: "rcs-fore", Name: "Forward RCS", Status: "online", Output: num(0)},
			{ID: "rcs-aft", Name: "Aft RCS", Status: "online", Output: num(5)},
		},
	},
	FTL: &models.FTL{
		Status: "standby", Charge: num(35), JumpRange: num(8.5), Cooldown: num(0), SpoolTime: num(180), Coordinates: "Sol / Kuiper Relay",
		Coils: []models.FTLCoil{
			{ID: "coil-1", Name: "Coil 1", Status: "online", Charge: num(36), Integrity: num(92), Aligned: yes()},
			{ID: "coil-2", Name: "Coil 2", Status: "online", Charge: num(35), Integrity: num(90), Aligned: yes()},
			{ID: "coil-3", Name: "Coil 3", Status: "warning", Charge: num(33), Integrity: num(78), Aligned: no()},
		},
	},
	Defense: models.Defense{
		Shields: &models.Shields{
			Status: "warning", Strength: num(74), Capacity: num(100), Regen: num(1.5), Frequency: num(257.4),
			Sectors: []models.ShieldSector{
				{ID: "fore", Name: "Fore", Status: "online", Strength: num(92)},
				{ID: "aft", Name: "Aft", Status: "warning", Strength: num(48)},
				{ID: "port", Name: "Port", Status: "online", Strength: num(77)},
				{ID: "starboard", Name: "Starboard", Status: "online", Strength: num(80)},
			},
		},
		Hull: &models.Hull{
			Status: "damaged", Integrity: num(86), Armor: num(70), Breaches: num(1),
			Sections: []models.HullSection{
				{ID: "bow", Name: "Bow", Status: "damaged", Integrity: num(64), Breached: yes()},
				{ID: "midship", Name: "Midship", Status: "online", Integrity: num(95), Breached: no()},
				{ID: "stern", Name: "Stern", Status: "online", Integrity: num(98), Breached: no()},
			},
		},
	},
}
