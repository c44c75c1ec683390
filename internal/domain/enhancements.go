package domain

// Servant enhancement bounds as defined by the game.
const (
	MinAscensionLevel = 0
	MaxAscensionLevel = 4
	MinSkillLevel     = 1
	MaxSkillLevel     = 10
	SkillSlotCount    = 3
)

// SkillLevels holds the levels of a servant's three skill slots.
// A nil slot means the skill has not been recorded; callers treat it as level 0.
type SkillLevels struct {
	Skill1 *int `json:"1,omitempty"`
	Skill2 *int `json:"2,omitempty"`
	Skill3 *int `json:"3,omitempty"`
}

// Level returns the level of the given slot (1-3), or 0 when the slot is unset.
func (s SkillLevels) Level(slot int) int {
	var p *int
	switch slot {
	case 1:
		p = s.Skill1
	case 2:
		p = s.Skill2
	case 3:
		p = s.Skill3
	}
	if p == nil {
		return 0
	}
	return *p
}

// WithLevel returns a copy of the skill levels with the given slot set.
// The receiver is not modified.
func (s SkillLevels) WithLevel(slot, level int) SkillLevels {
	v := level
	switch slot {
	case 1:
		s.Skill1 = &v
	case 2:
		s.Skill2 = &v
	case 3:
		s.Skill3 = &v
	}
	return s
}

// ServantEnhancements is a snapshot of one servant's upgrade state: ascension
// level, regular skills, and append skills. In a plan target, unset fields
// mean "no target for this axis".
type ServantEnhancements struct {
	Ascension    *int        `json:"ascension,omitempty"`
	Skills       SkillLevels `json:"skills"`
	AppendSkills SkillLevels `json:"append_skills"`
}

// AscensionLevel returns the ascension level, or 0 when unset.
func (e ServantEnhancements) AscensionLevel() int {
	if e.Ascension == nil {
		return 0
	}
	return *e.Ascension
}
