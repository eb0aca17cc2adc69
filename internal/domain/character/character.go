package character

import (
	"fmt"
	"time"

	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

// PlaceholderName is used when a creation step produces a value before a name step has run
const PlaceholderName = "Unnamed"

// Character is a player character being built or already saved in a game
type Character struct {
	ID        string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name      string          `yaml:"name" json:"name"`
	Race      string          `yaml:"race,omitempty" json:"race,omitempty"`
	Class     string          `yaml:"class,omitempty" json:"class,omitempty"`
	Stats     map[Ability]int `yaml:"stats" json:"stats"`
	Extra     map[string]any  `yaml:"extra,omitempty" json:"extra,omitempty"`
	CreatedAt time.Time       `yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time       `yaml:"updated_at" json:"updated_at"`
}

// New creates a character with every ability score at its default
func New(name string) *Character {
	now := time.Now()

	stats := make(map[Ability]int, len(Abilities))
	for _, ability := range Abilities {
		stats[ability] = abilityTable[ability].Default
	}

	return &Character{
		Name:      name,
		Stats:     stats,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetAbility sets an ability score, range-checked against the ability table.
// Accepts full names or shorthand (str, dex, ...).
func (c *Character) SetAbility(name string, value int) error {
	ability, ok := ResolveAbility(name)
	if !ok {
		return dnderr.Validationf("Unknown ability: %s", name)
	}

	if !ValidScore(ability, value) {
		info := abilityTable[ability]
		return dnderr.Validationf("%s must be between %d and %d", ability, info.Min, info.Max)
	}

	if c.Stats == nil {
		c.Stats = make(map[Ability]int, len(Abilities))
	}
	c.Stats[ability] = value
	c.UpdatedAt = time.Now()
	return nil
}

// GetAbility returns an ability score by full or shorthand name
func (c *Character) GetAbility(name string) (int, bool) {
	ability, ok := ResolveAbility(name)
	if !ok {
		return 0, false
	}
	score, ok := c.Stats[ability]
	return score, ok
}

// SetField writes a named field onto the character. Known fields (name,
// race, class, abilities) are set explicitly; anything else lands in the
// Extra bucket so a template can carry campaign-specific data.
func (c *Character) SetField(field string, value any) {
	switch field {
	case "name":
		c.Name = fmt.Sprint(value)
	case "race":
		c.Race = fmt.Sprint(value)
	case "class":
		c.Class = fmt.Sprint(value)
	default:
		if ability, ok := ResolveAbility(field); ok {
			if score, isInt := value.(int); isInt {
				if c.Stats == nil {
					c.Stats = make(map[Ability]int, len(Abilities))
				}
				c.Stats[ability] = score
				break
			}
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[field] = value
	}
	c.UpdatedAt = time.Now()
}

// String renders the character like "Aragorn (human) (ranger)"
func (c *Character) String() string {
	race := c.Race
	if race == "" {
		race = "no race"
	}
	class := c.Class
	if class == "" {
		class = "no class"
	}
	return fmt.Sprintf("%s (%s) (%s)", c.Name, race, class)
}
