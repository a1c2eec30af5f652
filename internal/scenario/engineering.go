package scenario

import (
	"github.com/beevik/etree"

	"github.com/terra-clan/bridge-console/internal/models"
)

var (
	temperatureKeys = []string{"temperature", "temperatur"}
	capacityKeys    = []string{"capacity", "kapazitaet"}
	onlineKeys      = []string{"online", "aktiv"}
)

func parseLifeSupport(el *etree.Element) *models.LifeSupport {
	if el == nil {
		return nil
	}
	return &models.LifeSupport{
		Status:      status(el, statusKeys...),
		Oxygen:      number(el, "oxygen", "o2", "sauerstoff"),
		CO2:         number(el, "co2"),
		Pressure:    number(el, "pressure", "druck"),
		Temperature: number(el, temperatureKeys...),
		Humidity:    number(el, "humidity", "feuchte"),
		Zones: collect(children(el, "zones", "zone"), func(z *etree.Element) models.LifeZone {
			return models.LifeZone{
				ID:          text(z, "id"),
				Name:        text(z, nameKeys...),
				Status:      status(z, statusKeys...),
				Oxygen:      number(z, "oxygen", "o2", "sauerstoff"),
				CO2:         number(z, "co2"),
				Pressure:    number(z, "pressure", "druck"),
				Temperature: number(z, temperatureKeys...),
				Sealed:      flag(z, "sealed", "versiegelt"),
			}
		}),
		Scrubbers: collect(children(el, "scrubbers", "scrubber"), func(s *etree.Element) models.Scrubber {
			return models.Scrubber{
				ID:         text(s, "id"),
				Name:       text(s, nameKeys...),
				Status:     status(s, statusKeys...),
				Efficiency: number(s, "efficiency", "effizienz"),
				Online:     flag(s, onlineKeys...),
			}
		}),
	}
}

func parsePower(el *etree.Element) *models.Power {
	if el == nil {
		return nil
	}
	return &models.Power{
		Status:  status(el, statusKeys...),
		Output:  number(el, "output", "leistung"),
		Demand:  number(el, "demand", "bedarf"),
		Reserve: number(el, "reserve"),
		Reactors: collect(children(el, "reactors", "reactor"), func(r *etree.Element) models.Reactor {
			return models.Reactor{
				ID:          text(r, "id"),
				Name:        text(r, nameKeys...),
				Status:      status(r, statusKeys...),
				Output:      number(r, "output", "leistung"),
				Capacity:    number(r, capacityKeys...),
				Temperature: number(r, temperatureKeys...),
				Online:      flag(r, onlineKeys...),
			}
		}),
		Buses: collect(children(el, "buses", "bus"), func(b *etree.Element) models.PowerBus {
			return models.PowerBus{
				ID:       text(b, "id"),
				Name:     text(b, nameKeys...),
				Status:   status(b, statusKeys...),
				Load:     number(b, "load", "last"),
				Capacity: number(b, capacityKeys...),
			}
		}),
		Batteries: collect(children(el, "batteries", "battery"), func(b *etree.Element) models.Battery {
			return models.Battery{
				ID:       text(b, "id"),
				Name:     text(b, nameKeys...),
				Status:   status(b, statusKeys...),
				Charge:   number(b, "charge", "ladung"),
				Capacity: number(b, capacityKeys...),
				Charging: flag(b, "charging", "laedt"),
			}
		}),
	}
}

func parseThermal(el *etree.Element) *models.Thermal {
	if el == nil {
		return nil
	}
	return &models.Thermal{
		Status:          status(el, statusKeys...),
		CoreTemperature: number(el, "coreTemperature", "core"),
		HullTemperature: number(el, "hullTemperature", "hull"),
		Radiators: collect(children(el, "radiators", "radiator"), func(r *etree.Element) models.Radiator {
			return models.Radiator{
				ID:          text(r, "id"),
				Name:        text(r, nameKeys...),
				Status:      status(r, statusKeys...),
				Temperature: number(r, temperatureKeys...),
				Efficiency:  number(r, "efficiency", "effizienz"),
				Deployed:    flag(r, "deployed", "ausgefahren"),
			}
		}),
		Loops: collect(children(el, "loops", "loop"), func(l *etree.Element) models.CoolantLoop {
			return models.CoolantLoop{
				ID:          text(l, "id"),
				Name:        text(l, nameKeys...),
				Status:      status(l, statusKeys...),
				Temperature: number(l, temperatureKeys...),
				Flow:        number(l, "flow", "durchfluss"),
			}
		}),
	}
}

func parsePropulsion(el *etree.Element) *models.Propulsion {
	if el == nil {
		return nil
	}
	return &models.Propulsion{
		Status:    status(el, statusKeys...),
		Thrust:    number(el, "thrust", "schub"),
		MaxThrust: number(el, "maxThrust"),
		Fuel:      number(el, "fuel", "treibstoff"),
		Velocity:  number(el, "velocity", "geschwindigkeit"),
		Heading:   number(el, "heading", "kurs"),
		Engines: collect(children(el, "engines", "engine"), func(e *etree.Element) models.Engine {
			return models.Engine{
				ID:          text(e, "id"),
				Name:        text(e, nameKeys...),
				Status:      status(e, statusKeys...),
				Thrust:      number(e, "thrust", "schub"),
				Temperature: number(e, temperatureKeys...),
				Online:      flag(e, onlineKeys...),
			}
		}),
		Thrusters: collect(children(el, "thrusters", "thruster"), func(t *etree.Element) models.Thruster {
			return models.Thruster{
				ID:     text(t, "id"),
				Name:   text(t, nameKeys...),
				Status: status(t, statusKeys...),
				Output: number(t, "output", "leistung"),
			}
		}),
	}
}

func parseFTL(el *etree.Element) *models.FTL {
	if el == nil {
		return nil
	}
	return &models.FTL{
		Status:      status(el, statusKeys...),
		Charge:      number(el, "charge", "ladung"),
		JumpRange:   number(el, "jumpRange", "reichweite"),
		Cooldown:    number(el, "cooldown"),
		SpoolTime:   number(el, "spoolTime"),
		Coordinates: text(el, "coordinates", "koordinaten"),
		Coils: collect(children(el, "coils", "coil"), func(c *etree.Element) models.FTLCoil {
			return models.FTLCoil{
				ID:        text(c, "id"),
				Name:      text(c, nameKeys...),
				Status:    status(c, statusKeys...),
				Charge:    number(c, "charge", "ladung"),
				Integrity: number(c, integrityKeys...),
				Aligned:   flag(c, "aligned", "ausgerichtet"),
			}
		}),
	}
}
