package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// MaxDice caps a single roll so a typo can't allocate a silly amount of dice
const MaxDice = 100

// RollResult describes the outcome of rolling one set of dice
type RollResult struct {
	Total    int
	RawTotal int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int

	// OtherTotal holds the discarded set's total for advantage/disadvantage rolls
	OtherTotal int
}

// Roll rolls count dice with the given number of sides and adds a bonus
func Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	if count > MaxDice {
		return nil, fmt.Errorf("too many dice: maximum is %d per roll", MaxDice)
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		total += roll
		out[i] = roll
	}

	return &RollResult{
		Total:    total + bonus,
		RawTotal: total,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
	}, nil
}

// ParseNotation parses dice notation like "2d6+3" or "d20" into count, sides, and bonus
func ParseNotation(notation string) (count, sides, bonus int, err error) {
	dice := strings.ToLower(strings.TrimSpace(notation))

	if plus := strings.SplitN(dice, "+", 2); len(plus) == 2 {
		bonus, err = strconv.Atoi(plus[1])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
		}
		dice = plus[0]
	} else if minus := strings.SplitN(dice, "-", 2); len(minus) == 2 {
		bonus, err = strconv.Atoi(minus[1])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
		}
		bonus = -bonus
		dice = minus[0]
	}

	parts := strings.SplitN(dice, "d", 2)
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
	}

	// "d20" means one die
	if parts[0] == "" {
		count = 1
	} else {
		count, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
		}
	}

	sides, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
	}

	if count <= 0 || sides <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
	}

	return count, sides, bonus, nil
}

// RollNotation parses dice notation and rolls it
func RollNotation(notation string) (*RollResult, error) {
	count, sides, bonus, err := ParseNotation(notation)
	if err != nil {
		return nil, err
	}

	return Roll(count, sides, bonus)
}

// String renders the result as "[4,5] = 9 + 3 = 12" style output
func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", ", ")
	if r.Bonus == 0 {
		return fmt.Sprintf("%s = %d", compact, r.RawTotal)
	}
	if r.Bonus > 0 {
		return fmt.Sprintf("%s = %d + %d = %d", compact, r.RawTotal, r.Bonus, r.Total)
	}
	return fmt.Sprintf("%s = %d - %d = %d", compact, r.RawTotal, -r.Bonus, r.Total)
}
