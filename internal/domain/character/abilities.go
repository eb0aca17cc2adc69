package character

import "strings"

// Ability identifies one of the six fixed ability scores
type Ability string

const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists every ability in display order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// AbilityInfo describes the legal range and display forms of an ability score
type AbilityInfo struct {
	Short   string
	Display string
	Min     int
	Max     int
	Default int
}

var abilityTable = map[Ability]AbilityInfo{
	AbilityStrength:     {Short: "str", Display: "Strength", Min: 3, Max: 20, Default: 10},
	AbilityDexterity:    {Short: "dex", Display: "Dexterity", Min: 3, Max: 20, Default: 10},
	AbilityConstitution: {Short: "con", Display: "Constitution", Min: 3, Max: 20, Default: 10},
	AbilityIntelligence: {Short: "int", Display: "Intelligence", Min: 3, Max: 20, Default: 10},
	AbilityWisdom:       {Short: "wis", Display: "Wisdom", Min: 3, Max: 20, Default: 10},
	AbilityCharisma:     {Short: "cha", Display: "Charisma", Min: 3, Max: 20, Default: 10},
}

// ResolveAbility maps a full or shorthand name (case-insensitive) to an Ability
func ResolveAbility(name string) (Ability, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))

	if _, ok := abilityTable[Ability(needle)]; ok {
		return Ability(needle), true
	}

	for ability, info := range abilityTable {
		if info.Short == needle {
			return ability, true
		}
	}

	return "", false
}

// Info returns the table entry for an ability
func Info(ability Ability) (AbilityInfo, bool) {
	info, ok := abilityTable[ability]
	return info, ok
}

// ValidScore reports whether score is inside the ability's legal range
func ValidScore(ability Ability, score int) bool {
	info, ok := abilityTable[ability]
	if !ok {
		return false
	}
	return score >= info.Min && score <= info.Max
}
