package quizshow

import (
	"fmt"
	"strconv"
	"strings"
)

// Ladder is the ordered list of prize levels, slot 1 first
type Ladder []PrizeLevel

// Final returns the number of the last slot
func (l Ladder) Final() int {
	return len(l)
}

// PrizeForSlot returns the amount attached to slot, or 0 outside the ladder
func (l Ladder) PrizeForSlot(slot int) int {
	for _, level := range l {
		if level.Slot == slot {
			return level.Amount
		}
	}
	return 0
}

// Banked returns what the player has already secured while standing on slot
func (l Ladder) Banked(slot int) int {
	return l.PrizeForSlot(slot - 1)
}

// WinningsForOutcome calculates the final prize for a session that ended on
// currentSlot with the given status.
//   - won: the prize of the final slot
//   - walkAway: the prize of the last completed slot
//   - lost: the highest checkpoint strictly below currentSlot, or 0
func (l Ladder) WinningsForOutcome(currentSlot int, status GameStatus) int {
	switch status {
	case StatusWon:
		return l.PrizeForSlot(l.Final())
	case StatusWalkAway:
		return l.PrizeForSlot(currentSlot - 1)
	case StatusLost:
		safe := 0
		for _, level := range l {
			if level.Safe && level.Slot < currentSlot {
				safe = level.Amount
			}
		}
		return safe
	}
	return 0
}

// Checkpoints returns the slots marked safe
func (l Ladder) Checkpoints() []int {
	var out []int
	for _, level := range l {
		if level.Safe {
			out = append(out, level.Slot)
		}
	}
	return out
}

// Validate checks that slots run 1..N and amounts never decrease.
func (l Ladder) Validate() error {
	var errs []string

	for i, level := range l {
		if level.Slot != i+1 {
			errs = append(errs, fmt.Sprintf("ladder[%d].slot must be %d", i, i+1))
		}
		if level.Amount < 0 {
			errs = append(errs, fmt.Sprintf("ladder[%d].amount must be >= 0", i))
		}
		if i > 0 && level.Amount < l[i-1].Amount {
			errs = append(errs, fmt.Sprintf("ladder[%d].amount must not decrease", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("ladder validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// FormatNumber renders n with comma thousands separators
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
