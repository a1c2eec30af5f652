package scenario

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/terra-clan/bridge-console/internal/models"
)

// parseDamageControl never returns nil collections, even for a missing section
func parseDamageControl(el *etree.Element) models.DamageControl {
	return models.DamageControl{
		Reports:   collect(children(el, "reports", "report"), parseDamageReport),
		Systems:   collect(children(el, "systems", "node"), parseDamageNode),
		Bypasses:  collect(children(el, "bypasses", "bypass"), parseBypass),
		Repairs:   collect(children(el, "repairs", "repair"), parseRepair),
		Conduits:  collect(children(el, "conduits", "conduit"), parseConduit),
		Inventory: collect(children(el, "inventory", "item"), parseInventoryItem),
	}
}

func parseDamageReport(el *etree.Element) models.DamageReport {
	return models.DamageReport{
		ID:       text(el, "id"),
		System:   text(el, "system"),
		Severity: status(el, "severity", "schwere"),
		Status:   status(el, statusKeys...),
		Location: text(el, "location", "ort"),
		ETA:      text(el, "eta"),
		Text:     reportText(el),
	}
}

// reportText prefers an explicit text attribute or <text> child and falls
// back to the element's own character data.
func reportText(el *etree.Element) string {
	if v, ok := lookup(el, "text", "message"); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(el.Text())
}

// parseDamageNode recurses through nested <node> elements
func parseDamageNode(el *etree.Element) models.DamageNode {
	return models.DamageNode{
		ID:        text(el, "id"),
		Name:      text(el, nameKeys...),
		Status:    status(el, statusKeys...),
		Integrity: number(el, integrityKeys...),
		Power:     number(el, powerKeys...),
		Note:      text(el, noteKeys...),
		Children:  collect(el.SelectElements("node"), parseDamageNode),
	}
}

func parseBypass(el *etree.Element) models.Bypass {
	return models.Bypass{
		ID:       text(el, "id"),
		From:     text(el, "from", "von"),
		To:       text(el, "to", "nach"),
		Status:   status(el, statusKeys...),
		Capacity: number(el, "capacity", "kapazitaet"),
		Active:   flag(el, "active", "aktiv"),
		Note:     text(el, noteKeys...),
	}
}

func parseRepair(el *etree.Element) models.Repair {
	return models.Repair{
		ID:       text(el, "id"),
		System:   text(el, "system"),
		Status:   status(el, statusKeys...),
		Priority: status(el, "priority", "prioritaet"),
		Progress: number(el, "progress", "fortschritt"),
		ETA:      text(el, "eta"),
		Crew:     text(el, "crew", "team"),
		Parts: collect(children(el, "parts", "part"), func(p *etree.Element) models.RepairPart {
			return models.RepairPart{
				ID:        text(p, "id"),
				Name:      text(p, nameKeys...),
				Quantity:  number(p, "quantity", "menge"),
				Available: flag(p, "available", "verfuegbar"),
			}
		}),
	}
}

func parseConduit(el *etree.Element) models.Conduit {
	return models.Conduit{
		ID:       text(el, "id"),
		Name:     text(el, nameKeys...),
		Status:   status(el, statusKeys...),
		Load:     number(el, "load", "last"),
		Capacity: number(el, "capacity", "kapazitaet"),
		Switches: collect(children(el, "switches", "switch"), func(s *etree.Element) models.ConduitSwitch {
			return models.ConduitSwitch{
				ID:       text(s, "id"),
				Name:     text(s, nameKeys...),
				Position: status(s, "position", "stellung"),
				Closed:   flag(s, "closed", "geschlossen"),
			}
		}),
	}
}

func parseInventoryItem(el *etree.Element) models.InventoryItem {
	return models.InventoryItem{
		ID:       text(el, "id"),
		Name:     text(el, nameKeys...),
		Quantity: number(el, "quantity", "menge"),
		Unit:     text(el, "unit", "einheit"),
		Location: text(el, "location", "ort"),
	}
}
