package scenario

import (
	"github.com/beevik/etree"

	"github.com/terra-clan/bridge-console/internal/models"
)

func parseShields(el *etree.Element) *models.Shields {
	if el == nil {
		return nil
	}
	return &models.Shields{
		Status:    status(el, statusKeys...),
		Strength:  number(el, "strength", "staerke"),
		Capacity:  number(el, capacityKeys...),
		Regen:     number(el, "regen", "regeneration"),
		Frequency: number(el, "frequency", "frequenz"),
		Sectors: collect(children(el, "sectors", "sector"), func(s *etree.Element) models.ShieldSector {
			return models.ShieldSector{
				ID:       text(s, "id"),
				Name:     text(s, nameKeys...),
				Status:   status(s, statusKeys...),
				Strength: number(s, "strength", "staerke"),
			}
		}),
	}
}

func parseHull(el *etree.Element) *models.Hull {
	if el == nil {
		return nil
	}
	return &models.Hull{
		Status:    status(el, statusKeys...),
		Integrity: number(el, integrityKeys...),
		Armor:     number(el, "armor", "panzerung"),
		Breaches:  number(el, "breaches", "brueche"),
		Sections: collect(children(el, "sections", "section"), func(s *etree.Element) models.HullSection {
			return models.HullSection{
				ID:        text(s, "id"),
				Name:      text(s, nameKeys...),
				Status:    status(s, statusKeys...),
				Integrity: number(s, integrityKeys...),
				Breached:  flag(s, "breached", "durchbrochen"),
			}
		}),
	}
}
