// Package scenario turns a scenario XML document into models.Scenario.
package scenario

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/terra-clan/bridge-console/internal/models"
)

// Parse reads a scenario document. It returns a *ParseError only for
// malformed XML; absent sections resolve to nil or empty collections.
func Parse(xmlText string) (*models.Scenario, error) {
	if strings.TrimSpace(xmlText) == "" {
		return nil, &ParseError{Reason: "empty document"}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, &ParseError{Reason: "malformed XML", Err: err}
	}
	if doc.Root() == nil {
		return nil, &ParseError{Reason: "no root element"}
	}
	if err := checkProlog(doc); err != nil {
		return nil, err
	}

	root := doc.FindElement("./scenario")
	ship := doc.FindElement("./scenario/ship")

	sc := &models.Scenario{
		ID:   text(root, "id"),
		Name: text(root, nameKeys...),
		Ship: models.Ship{
			Name:     text(ship, nameKeys...),
			Class:    text(ship, "class", "klasse"),
			Registry: text(ship, "registry"),
		},
		Systems:       parseSystems(doc.FindElement("./scenario/ship/systems")),
		DamageControl: parseDamageControl(doc.FindElement("./scenario/ship/damageControl")),
		LifeSupport:   parseLifeSupport(doc.FindElement("./scenario/ship/lifeSupport")),
		Power:         parsePower(doc.FindElement("./scenario/ship/power")),
		Thermal:       parseThermal(doc.FindElement("./scenario/ship/thermal")),
		Propulsion:    parsePropulsion(doc.FindElement("./scenario/ship/propulsion")),
		FTL:           parseFTL(doc.FindElement("./scenario/ship/ftl")),
		Defense: models.Defense{
			Shields: parseShields(doc.FindElement("./scenario/ship/defense/shields")),
			Hull:    parseHull(doc.FindElement("./scenario/ship/defense/hull")),
		},
	}
	return sc, nil
}

// checkProlog rejects documents with more than one root element or with
// text outside the root.
func checkProlog(doc *etree.Document) error {
	if len(doc.ChildElements()) != 1 {
		return &ParseError{Reason: "malformed XML", Err: errors.New("multiple root elements")}
	}
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return &ParseError{Reason: "malformed XML", Err: errors.New("text outside the root element")}
		}
	}
	return nil
}

func parseSystems(el *etree.Element) []models.System {
	var items []*etree.Element
	if el != nil {
		items = el.SelectElements("system")
	}
	return collect(items, func(s *etree.Element) models.System {
		return models.System{
			ID:          text(s, "id"),
			Name:        text(s, nameKeys...),
			Status:      status(s, statusKeys...),
			Power:       number(s, powerKeys...),
			Integrity:   number(s, integrityKeys...),
			Load:        number(s, "load", "last"),
			Category:    text(s, "category", "kategorie"),
			Location:    text(s, "location", "ort"),
			Description: text(s, "description", "beschreibung"),
			Note:        text(s, noteKeys...),
		}
	})
}
