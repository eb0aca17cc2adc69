package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/roleplay-toolkit/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll appends a single predetermined roll
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue of predetermined rolls
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// getNextRoll returns the next predetermined roll
func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

func (m *ManualMockRoller) rollSet(count, sides int) (int, []int, error) {
	rolls := make([]int, count)
	total := 0

	for i := 0; i < count; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return 0, nil, err
		}
		if roll < 1 || roll > sides {
			return 0, nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		total += roll
	}

	return total, rolls, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	total, rolls, err := m.rollSet(count, sides)
	if err != nil {
		return nil, err
	}

	return &dice.RollResult{
		Total:    total + bonus,
		RawTotal: total,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
	}, nil
}

// RollWithAdvantage implements dice.Roller.RollWithAdvantage
func (m *ManualMockRoller) RollWithAdvantage(count, sides, bonus int) (*dice.RollResult, error) {
	total1, rolls1, err := m.rollSet(count, sides)
	if err != nil {
		return nil, err
	}

	total2, rolls2, err := m.rollSet(count, sides)
	if err != nil {
		return nil, err
	}

	chosenTotal, chosenRolls, otherTotal := total1, rolls1, total2
	if total2 > total1 {
		chosenTotal, chosenRolls, otherTotal = total2, rolls2, total1
	}

	return &dice.RollResult{
		Total:      chosenTotal + bonus,
		RawTotal:   chosenTotal,
		Rolls:      chosenRolls,
		Bonus:      bonus,
		Count:      count,
		Sides:      sides,
		OtherTotal: otherTotal,
	}, nil
}

// RollWithDisadvantage implements dice.Roller.RollWithDisadvantage
func (m *ManualMockRoller) RollWithDisadvantage(count, sides, bonus int) (*dice.RollResult, error) {
	total1, rolls1, err := m.rollSet(count, sides)
	if err != nil {
		return nil, err
	}

	total2, rolls2, err := m.rollSet(count, sides)
	if err != nil {
		return nil, err
	}

	chosenTotal, chosenRolls, otherTotal := total1, rolls1, total2
	if total2 < total1 {
		chosenTotal, chosenRolls, otherTotal = total2, rolls2, total1
	}

	return &dice.RollResult{
		Total:      chosenTotal + bonus,
		RawTotal:   chosenTotal,
		Rolls:      chosenRolls,
		Bonus:      bonus,
		Count:      count,
		Sides:      sides,
		OtherTotal: otherTotal,
	}, nil
}
