package dice

// randomRoller implements Roller using the package-level dice functions
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	return Roll(count, sides, bonus)
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *randomRoller) RollWithAdvantage(count, sides, bonus int) (*RollResult, error) {
	first, err := Roll(count, sides, 0)
	if err != nil {
		return nil, err
	}

	second, err := Roll(count, sides, 0)
	if err != nil {
		return nil, err
	}

	chosen, other := first, second
	if second.RawTotal > first.RawTotal {
		chosen, other = second, first
	}

	return &RollResult{
		Total:      chosen.RawTotal + bonus,
		RawTotal:   chosen.RawTotal,
		Rolls:      chosen.Rolls,
		Bonus:      bonus,
		Count:      count,
		Sides:      sides,
		OtherTotal: other.RawTotal,
	}, nil
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *randomRoller) RollWithDisadvantage(count, sides, bonus int) (*RollResult, error) {
	first, err := Roll(count, sides, 0)
	if err != nil {
		return nil, err
	}

	second, err := Roll(count, sides, 0)
	if err != nil {
		return nil, err
	}

	chosen, other := first, second
	if second.RawTotal < first.RawTotal {
		chosen, other = second, first
	}

	return &RollResult{
		Total:      chosen.RawTotal + bonus,
		RawTotal:   chosen.RawTotal,
		Rolls:      chosen.Rolls,
		Bonus:      bonus,
		Count:      count,
		Sides:      sides,
		OtherTotal: other.RawTotal,
	}, nil
}
