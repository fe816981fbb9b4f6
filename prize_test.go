package quizshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrizeForSlot(t *testing.T) {
	l := DefaultLadder()
	assert.Equal(t, 10, l.PrizeForSlot(1))
	assert.Equal(t, 200, l.PrizeForSlot(5))
	assert.Equal(t, 2000, l.PrizeForSlot(10))
	assert.Equal(t, 10000, l.PrizeForSlot(15))
	assert.Equal(t, 0, l.PrizeForSlot(0))
	assert.Equal(t, 0, l.PrizeForSlot(16))
}

func TestWinningsForOutcome(t *testing.T) {
	l := DefaultLadder()

	tests := []struct {
		name   string
		slot   int
		status GameStatus
		want   int
	}{
		{"won", 15, StatusWon, 10000},
		{"lost on first", 1, StatusLost, 0},
		{"lost before first checkpoint", 4, StatusLost, 0},
		{"lost on checkpoint slot", 5, StatusLost, 0},
		{"lost after first checkpoint", 7, StatusLost, 200},
		{"lost after second checkpoint", 14, StatusLost, 2000},
		{"walk away on first", 1, StatusWalkAway, 0},
		{"walk away after checkpoint", 6, StatusWalkAway, 200},
		{"walk away late", 11, StatusWalkAway, 2000},
		{"walk away mid ladder", 8, StatusWalkAway, 500},
		{"still playing", 8, StatusInProgress, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.WinningsForOutcome(tt.slot, tt.status))
		})
	}
}

func TestBankedAndCheckpoints(t *testing.T) {
	l := DefaultLadder()
	assert.Equal(t, 0, l.Banked(1))
	assert.Equal(t, 200, l.Banked(6))
	assert.Equal(t, []int{5, 10}, l.Checkpoints())
	assert.Equal(t, 15, l.Final())
}

func TestLadderValidate(t *testing.T) {
	assert.NoError(t, DefaultLadder().Validate())

	err := Ladder{{Slot: 1, Amount: 100}, {Slot: 3, Amount: 50}}.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "ladder[1].slot must be 2")
		assert.Contains(t, err.Error(), "ladder[1].amount must not decrease")
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "750", FormatNumber(750))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "10,000", FormatNumber(10000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-2,000", FormatNumber(-2000))
}
