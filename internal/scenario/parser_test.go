package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/bridge-console/internal/models"
)

func loadFixture(t *testing.T) *models.Scenario {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "scenario.xml"))
	require.NoError(t, err)
	sc, err := Parse(string(data))
	require.NoError(t, err)
	return sc
}

func TestParse_Header(t *testing.T) {
	sc := loadFixture(t)

	assert.Equal(t, "drill-7", sc.ID)
	assert.Equal(t, "Asteroid Field Drill", sc.Name)
	assert.Equal(t, models.Ship{Name: "ISV Kestrel", Class: "Frigate", Registry: "FFG-220"}, sc.Ship)
}

func TestParse_SystemDecimalCommaAndEmptyAttribute(t *testing.T) {
	sc, err := Parse(`<scenario><ship><systems><system id="a" power="84,5" integrity=""/></systems></ship></scenario>`)
	require.NoError(t, err)
	require.Len(t, sc.Systems, 1)

	sys := sc.Systems[0]
	require.NotNil(t, sys.Power)
	assert.Equal(t, 84.5, *sys.Power)
	assert.Nil(t, sys.Integrity)
	assert.Nil(t, sys.Load, "missing numeric attribute must be nil, not 0")
}

func TestParse_Systems(t *testing.T) {
	sc := loadFixture(t)
	require.Len(t, sc.Systems, 3)

	reactor := sc.Systems[0]
	assert.Equal(t, "reactor", reactor.ID)
	assert.Equal(t, "online", reactor.Status)
	assert.Equal(t, 84.5, *reactor.Power)
	assert.Nil(t, reactor.Integrity)
	assert.Equal(t, 71.25, *reactor.Load)
	assert.Equal(t, "power", reactor.Category)

	sensors := sc.Systems[1]
	assert.Equal(t, "Sensor Array", sensors.Name, "child element text used when attribute is absent")
	assert.Equal(t, "critical", sensors.Status)
	assert.Equal(t, 40.0, *sensors.Integrity)
	assert.Equal(t, 12.0, *sensors.Power)
	assert.Equal(t, "Port dish destroyed", sensors.Note)

	comms := sc.Systems[2]
	assert.Equal(t, 90.0, *comms.Integrity, "integrity is tried before integritaet")
	assert.Nil(t, comms.Power)
	assert.Equal(t, "Long-range relay", comms.Description)
}

func TestParse_AttributeWinsOverChild(t *testing.T) {
	sc, err := Parse(`<scenario><ship><systems>
		<system id="a" name="From Attribute" power=""><name>From Child</name><power>50</power></system>
	</systems></ship></scenario>`)
	require.NoError(t, err)
	require.Len(t, sc.Systems, 1)

	assert.Equal(t, "From Attribute", sc.Systems[0].Name)
	assert.Nil(t, sc.Systems[0].Power, "empty attribute still takes priority over child text")
}

func TestParse_UnknownStatusKept(t *testing.T) {
	sc, err := Parse(`<scenario><ship><systems><system id="a" status=" Recalibrating "/></systems></ship></scenario>`)
	require.NoError(t, err)
	assert.Equal(t, "recalibrating", sc.Systems[0].Status)
}

func TestParse_MissingSections(t *testing.T) {
	sc := loadFixture(t)

	assert.Nil(t, sc.Thermal)
	assert.Nil(t, sc.Defense.Hull)
	assert.NotNil(t, sc.Defense.Shields)

	empty, err := Parse(`<scenario/>`)
	require.NoError(t, err)
	assert.Empty(t, empty.Systems)
	assert.NotNil(t, empty.Systems)
	assert.NotNil(t, empty.DamageControl.Reports)
	assert.NotNil(t, empty.DamageControl.Systems)
	assert.Nil(t, empty.LifeSupport)
	assert.Nil(t, empty.Power)
	assert.Nil(t, empty.Thermal)
	assert.Nil(t, empty.Propulsion)
	assert.Nil(t, empty.FTL)
	assert.Nil(t, empty.Defense.Shields)
	assert.Nil(t, empty.Defense.Hull)
}

func TestParse_ForeignRootIsNotAnError(t *testing.T) {
	sc, err := Parse(`<mission><ship/></mission>`)
	require.NoError(t, err)
	assert.Empty(t, sc.Systems)
	assert.Nil(t, sc.Power)
}

func TestParse_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"just text",
		`<scenario><ship name="x></scenario>`,
		`<scenario><ship></scenario>`,
		`<scenario>`,
		`<scenario/><scenario/>`,
		`<scenario/>junk`,
		`junk<scenario/>`,
		`<a/><scenario><ship><systems><system id="x"/></systems></ship></scenario>`,
	}

	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			sc, err := Parse(in)
			require.Error(t, err)
			assert.Nil(t, sc)

			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParse_DamageReports(t *testing.T) {
	sc := loadFixture(t)
	reports := sc.DamageControl.Reports
	require.Len(t, reports, 2)

	assert.Equal(t, "high", reports[0].Severity)
	assert.Equal(t, "open", reports[0].Status)
	assert.Equal(t, "00:30", reports[0].ETA)
	assert.Equal(t, "Dish torn off", reports[0].Text)

	assert.Equal(t, "low", reports[1].Severity)
	assert.Equal(t, "Coolant drift", reports[1].Text)
}

func TestParse_DamageTreeOrder(t *testing.T) {
	sc := loadFixture(t)
	roots := sc.DamageControl.Systems
	require.Len(t, roots, 2)

	assert.Equal(t, "sensors", roots[0].ID)
	assert.Equal(t, "reactor", roots[1].ID)
	assert.Equal(t, 3, roots[0].Depth())
	assert.Equal(t, 1, roots[1].Depth())

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "dish", roots[0].Children[0].ID)
	assert.Equal(t, "relay", roots[0].Children[1].ID)
	assert.Equal(t, 35.5, *roots[0].Children[1].Integrity)
	assert.Equal(t, "relay-board", roots[0].Children[1].Children[0].ID)
	assert.Nil(t, roots[1].Integrity)
	assert.Equal(t, 84.0, *roots[1].Power)

	assert.Equal(t, "relay-board", sc.DamageControl.FindDamageNode("relay-board").ID)
	assert.Nil(t, sc.DamageControl.FindDamageNode("missing"))
}

func TestParse_DamageTreeDepth(t *testing.T) {
	for _, depth := range []int{1, 2, 5, 40} {
		t.Run(fmt.Sprintf("depth=%d", depth), func(t *testing.T) {
			var b strings.Builder
			b.WriteString("<scenario><ship><damageControl><systems>")
			for i := 0; i < depth; i++ {
				fmt.Fprintf(&b, `<node id="n%d"><node id="leaf%d-a"/>`, i, i)
			}
			for i := 0; i < depth; i++ {
				fmt.Fprintf(&b, `<node id="n%d-tail"/></node>`, i)
			}
			b.WriteString("</systems></damageControl></ship></scenario>")

			sc, err := Parse(b.String())
			require.NoError(t, err)
			require.Len(t, sc.DamageControl.Systems, 1)

			root := sc.DamageControl.Systems[0]
			assert.Equal(t, depth+1, root.Depth())

			// leaf comes first, then the nested chain, then the tail
			node := root
			for i := 0; i < depth; i++ {
				assert.Equal(t, fmt.Sprintf("n%d", i), node.ID)
				assert.Equal(t, fmt.Sprintf("leaf%d-a", i), node.Children[0].ID)
				last := node.Children[len(node.Children)-1]
				assert.Equal(t, fmt.Sprintf("n%d-tail", depth-1-i), last.ID)
				if i < depth-1 {
					require.Len(t, node.Children, 3)
					node = node.Children[1]
				}
			}
		})
	}
}

func TestParse_NestedLists(t *testing.T) {
	sc := loadFixture(t)
	dc := sc.DamageControl

	require.Len(t, dc.Bypasses, 2)
	assert.True(t, *dc.Bypasses[0].Active)
	assert.Equal(t, 20.0, *dc.Bypasses[0].Capacity)
	assert.Nil(t, dc.Bypasses[1].Active, "unknown boolean token is nil, not false")

	require.Len(t, dc.Repairs, 1)
	rep := dc.Repairs[0]
	assert.Equal(t, "in progress", rep.Status)
	assert.Equal(t, "high", rep.Priority)
	assert.Equal(t, 12.5, *rep.Progress)
	require.Len(t, rep.Parts, 2)
	assert.Equal(t, "p1", rep.Parts[0].ID)
	assert.True(t, *rep.Parts[0].Available)
	assert.False(t, *rep.Parts[1].Available)

	require.Len(t, dc.Conduits, 1)
	sw := dc.Conduits[0].Switches
	require.Len(t, sw, 2)
	assert.Equal(t, "closed", sw[0].Position)
	assert.True(t, *sw[0].Closed)
	assert.False(t, *sw[1].Closed)

	require.Len(t, dc.Inventory, 1)
	assert.Equal(t, 12.5, *dc.Inventory[0].Quantity)
}

func TestParse_EngineeringSections(t *testing.T) {
	sc := loadFixture(t)

	require.NotNil(t, sc.LifeSupport)
	assert.Equal(t, 20.9, *sc.LifeSupport.Oxygen)
	assert.Nil(t, sc.LifeSupport.Humidity)
	require.Len(t, sc.LifeSupport.Zones, 1)
	assert.False(t, *sc.LifeSupport.Zones[0].Sealed)
	assert.True(t, *sc.LifeSupport.Scrubbers[0].Online)

	require.NotNil(t, sc.Power)
	assert.Equal(t, 920.0, *sc.Power.Output)
	assert.Nil(t, sc.Power.Reserve)
	assert.True(t, *sc.Power.Reactors[0].Online)
	assert.Equal(t, "", sc.Power.Buses[0].Status)
	assert.True(t, *sc.Power.Batteries[0].Charging)
	assert.Empty(t, sc.Power.Batteries[0].Status)

	require.NotNil(t, sc.Propulsion)
	assert.Equal(t, 100.0, *sc.Propulsion.MaxThrust)
	assert.NotNil(t, sc.Propulsion.Thrusters)
	assert.Empty(t, sc.Propulsion.Thrusters)

	require.NotNil(t, sc.FTL)
	assert.Equal(t, "standby", sc.FTL.Status)
	assert.Equal(t, 8.5, *sc.FTL.JumpRange)
	assert.Equal(t, "Sol / Kuiper Relay", sc.FTL.Coordinates)
	assert.False(t, *sc.FTL.Coils[0].Aligned)

	require.NotNil(t, sc.Defense.Shields)
	assert.Equal(t, 257.4, *sc.Defense.Shields.Frequency)
	require.Len(t, sc.Defense.Shields.Sectors, 2)
	assert.Equal(t, "aft", sc.Defense.Shields.Sectors[1].ID)
}

func TestParse_NumbersSurviveJSON(t *testing.T) {
	sc := loadFixture(t)

	data, err := json.Marshal(sc)
	require.NoError(t, err)

	var decoded models.Scenario
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, *sc.Systems[0].Power, *decoded.Systems[0].Power)
	assert.Equal(t, *sc.Defense.Shields.Frequency, *decoded.Defense.Shields.Frequency)
	assert.Equal(t, *sc.DamageControl.Repairs[0].Progress, *decoded.DamageControl.Repairs[0].Progress)
	assert.Nil(t, decoded.Systems[0].Integrity)
	assert.Nil(t, decoded.Thermal)
}
