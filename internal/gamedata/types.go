package gamedata

// ItemQuantity is a material reference with an amount.
type ItemQuantity struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// EnhancementCost is the one-time cost of a single upgrade step: a set of
// materials plus a QP amount.
type EnhancementCost struct {
	Materials []ItemQuantity `json:"materials"`
	QP        int64          `json:"qp"`
}

// Costume is an unlockable costume defined for a servant.
type Costume struct {
	ID           int             `json:"costume_id"`
	CollectionNo int             `json:"collection_no"`
	Name         string          `json:"name"`
	Cost         EnhancementCost `json:"cost"`
}

// Servant is the read-only catalog definition of a servant: identity plus
// the per-level upgrade cost tables.
//
// SkillMaterials and AppendSkillMaterials are keyed by the level the step
// starts from: key L holds the cost of raising a skill from L to L+1, so a
// full 1..10 table has keys 1..9 and key 9 is the lore step.
// AscensionMaterials is keyed by the ascension level reached (1..4).
type Servant struct {
	ID                   int                     `json:"servant_id"`
	CollectionNo         int                     `json:"collection_no"`
	Name                 string                  `json:"name"`
	Class                string                  `json:"class"`
	Rarity               int                     `json:"rarity"`
	SkillMaterials       map[int]EnhancementCost `json:"skill_materials"`
	AppendSkillMaterials map[int]EnhancementCost `json:"append_skill_materials"`
	AscensionMaterials   map[int]EnhancementCost `json:"ascension_materials"`
	Costumes             map[int]Costume         `json:"costumes"`
}

// MaxAscension returns the highest ascension level the catalog defines a
// cost for, or 0 when the servant has no ascension table.
func (s *Servant) MaxAscension() int {
	max := 0
	for level := range s.AscensionMaterials {
		if level > max {
			max = level
		}
	}
	return max
}

// Item is a catalog material or currency-adjacent item definition.
type Item struct {
	ID         int      `json:"item_id"`
	Name       string   `json:"name"`
	Background string   `json:"background,omitempty"`
	Uses       []string `json:"uses,omitempty"`
	Priority   int      `json:"priority,omitempty"`
}
