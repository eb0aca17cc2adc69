package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// RollWithAdvantage rolls the set twice and keeps the higher total
	RollWithAdvantage(count, sides, bonus int) (*RollResult, error)

	// RollWithDisadvantage rolls the set twice and keeps the lower total
	RollWithDisadvantage(count, sides, bonus int) (*RollResult, error)
}
