package models

// DamageControl groups everything below <damageControl>
type DamageControl struct {
	Reports   []DamageReport  `json:"reports"`
	Systems   []DamageNode    `json:"systems"`
	Bypasses  []Bypass        `json:"bypasses"`
	Repairs   []Repair        `json:"repairs"`
	Conduits  []Conduit       `json:"conduits"`
	Inventory []InventoryItem `json:"inventory"`
}

// DamageReport is a flat damage report entry
type DamageReport struct {
	ID       string `json:"id"`
	System   string `json:"system"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
	Location string `json:"location"`
	ETA      string `json:"eta"`
	Text     string `json:"text"`
}

// DamageNode is one entry of the damage-control hierarchy
// (system -> subsystem -> component). Children keep document order.
type DamageNode struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Status    string       `json:"status"`
	Integrity *float64     `json:"integrity"`
	Power     *float64     `json:"power"`
	Note      string       `json:"note"`
	Children  []DamageNode `json:"children"`
}

// Depth returns the number of levels in the subtree rooted at n
func (n *DamageNode) Depth() int {
	deepest := 0
	for i := range n.Children {
		if d := n.Children[i].Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// FindNode searches the subtree depth-first for a node with the given id
func (n *DamageNode) FindNode(id string) *DamageNode {
	if n.ID == id {
		return n
	}
	for i := range n.Children {
		if found := n.Children[i].FindNode(id); found != nil {
			return found
		}
	}
	return nil
}

// FindDamageNode searches all damage-control roots for a node
func (d *DamageControl) FindDamageNode(id string) *DamageNode {
	for i := range d.Systems {
		if found := d.Systems[i].FindNode(id); found != nil {
			return found
		}
	}
	return nil
}

// Bypass is a temporary power or coolant reroute
type Bypass struct {
	ID       string   `json:"id"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Status   string   `json:"status"`
	Capacity *float64 `json:"capacity"`
	Active   *bool    `json:"active"`
	Note     string   `json:"note"`
}

// Repair is a repair job with the parts it needs
type Repair struct {
	ID       string       `json:"id"`
	System   string       `json:"system"`
	Status   string       `json:"status"`
	Priority string       `json:"priority"`
	Progress *float64     `json:"progress"`
	ETA      string       `json:"eta"`
	Crew     string       `json:"crew"`
	Parts    []RepairPart `json:"parts"`
}

// RepairPart is a part required by a repair job
type RepairPart struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Available *bool    `json:"available"`
}

// Conduit is a power conduit with its switches
type Conduit struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Status   string          `json:"status"`
	Load     *float64        `json:"load"`
	Capacity *float64        `json:"capacity"`
	Switches []ConduitSwitch `json:"switches"`
}

// ConduitSwitch is a breaker inside a conduit
type ConduitSwitch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Closed   *bool  `json:"closed"`
}

// InventoryItem is a spare part or consumable in stock
type InventoryItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Location string   `json:"location"`
}

func (d DamageControl) clone() DamageControl {
	return DamageControl{
		Reports:   cloneSlice(d.Reports, func(r DamageReport) DamageReport { return r }),
		Systems:   cloneSlice(d.Systems, DamageNode.clone),
		Bypasses:  cloneSlice(d.Bypasses, Bypass.clone),
		Repairs:   cloneSlice(d.Repairs, Repair.clone),
		Conduits:  cloneSlice(d.Conduits, Conduit.clone),
		Inventory: cloneSlice(d.Inventory, InventoryItem.clone),
	}
}

func (n DamageNode) clone() DamageNode {
	n.Integrity = clonePtr(n.Integrity)
	n.Power = clonePtr(n.Power)
	n.Children = cloneSlice(n.Children, DamageNode.clone)
	return n
}

func (b Bypass) clone() Bypass {
	b.Capacity = clonePtr(b.Capacity)
	b.Active = clonePtr(b.Active)
	return b
}

func (r Repair) clone() Repair {
	r.Progress = clonePtr(r.Progress)
	r.Parts = cloneSlice(r.Parts, func(p RepairPart) RepairPart {
		p.Quantity = clonePtr(p.Quantity)
		p.Available = clonePtr(p.Available)
		return p
	})
	return r
}

func (c Conduit) clone() Conduit {
	c.Load = clonePtr(c.Load)
	c.Capacity = clonePtr(c.Capacity)
	c.Switches = cloneSlice(c.Switches, func(s ConduitSwitch) ConduitSwitch {
		s.Closed = clonePtr(s.Closed)
		return s
	})
	return c
}

func (i InventoryItem) clone() InventoryItem {
	i.Quantity = clonePtr(i.Quantity)
	return i
}
