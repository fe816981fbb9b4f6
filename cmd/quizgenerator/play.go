package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"quizshow"
)

const optionLetters = "ABCD"

// terminal drives a game from stdin and prints every change to stdout
type terminal struct {
	out  io.Writer
	game *quizshow.Game

	lastSlot     int
	lastRevealed bool
	lastAids     int
}

func playGame(catalog *quizshow.Catalog, rng quizshow.RandomSource, timed bool) {
	game := quizshow.NewGame(catalog, quizshow.GameConfig{RNG: rng})
	t := &terminal{out: os.Stdout, game: game}

	updates := make(chan quizshow.Snapshot, 16)
	ticks := make(chan int, 4)

	var countdown *quizshow.Countdown
	if timed {
		countdown = quizshow.NewCountdown(quizshow.RealClock(), nil, game.TimeUp)
		countdown.OnTick(func(remaining int) {
			select {
			case ticks <- remaining:
			default:
			}
		})
	}
	game.OnChange(func(s quizshow.Snapshot) {
		if countdown != nil {
			countdown.Follow(s)
		}
		updates <- s
	})

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	t.printLadder()
	fmt.Fprintln(t.out, "Answer with A-D. Lifelines: 5 (50:50), h (hint), p (poll), d (debug). w walks away, q quits.")
	game.Start()

	for {
		select {
		case s := <-updates:
			if t.render(s) {
				return
			}

		case remaining := <-ticks:
			if remaining <= 5 || remaining%10 == 0 {
				fmt.Fprintf(t.out, "  %d seconds left\n", remaining)
			}

		case line, ok := <-lines:
			if !ok {
				game.Stop()
				return
			}
			if !t.handle(strings.TrimSpace(strings.ToLower(line))) {
				game.Stop()
				if countdown != nil {
					countdown.Stop()
				}
				return
			}
		}
	}
}

// handle applies one command. It returns false when the player quits.
func (t *terminal) handle(cmd string) bool {
	switch cmd {
	case "":
		return true
	case "q", "quit":
		return false
	case "w":
		t.game.WalkAway()
		return true
	case "5", "h", "p", "d":
		kind := map[string]quizshow.LifelineKind{
			"5": quizshow.LifelineSplit,
			"h": quizshow.LifelineHint,
			"p": quizshow.LifelinePoll,
			"d": quizshow.LifelineTrace,
		}[cmd]
		if _, ok := t.game.UseLifeline(kind); !ok {
			fmt.Fprintf(t.out, "  %s is not available\n", kind)
		}
		return true
	}

	if len(cmd) == 1 {
		if i := strings.IndexByte(strings.ToLower(optionLetters), cmd[0]); i >= 0 {
			t.game.SelectAnswer(i)
			return true
		}
	}
	fmt.Fprintf(t.out, "  unknown command %q\n", cmd)
	return true
}

// render prints what changed since the last snapshot. It returns true once
// the game is over.
func (t *terminal) render(s quizshow.Snapshot) bool {
	if s.Status.Terminal() {
		t.printSummary(s)
		return true
	}
	if s.Status != quizshow.StatusInProgress || s.Question == nil {
		return false
	}

	switch {
	case s.Slot != t.lastSlot || (!s.Revealed && t.lastRevealed):
		t.printQuestion(s)
	case s.Revealed && !t.lastRevealed:
		t.printReveal(s)
	case len(s.Display.Aids) != t.lastAids:
		t.printAids(s)
	case s.Selected != nil && s.Pending:
		if *s.Selected == quizshow.NoAnswer {
			fmt.Fprintln(t.out, "  Time's up!")
		} else {
			fmt.Fprintf(t.out, "  Final answer: %c\n", optionLetters[*s.Selected])
		}
	case s.Pending:
		fmt.Fprintln(t.out, "  Walking away...")
	}

	t.lastSlot = s.Slot
	t.lastRevealed = s.Revealed
	t.lastAids = len(s.Display.Aids)
	return false
}

func (t *terminal) printLadder() {
	ladder := t.game.Ladder()
	for i := len(ladder) - 1; i >= 0; i-- {
		level := ladder[i]
		mark := " "
		if level.Safe {
			mark = "*"
		}
		fmt.Fprintf(t.out, "%s %2d  %s\n", mark, level.Slot, quizshow.FormatNumber(level.Amount))
	}
	fmt.Fprintln(t.out)
}

func (t *terminal) printQuestion(s quizshow.Snapshot) {
	fmt.Fprintf(t.out, "\nQuestion %d of %d for %s stickers (%s, %ds, banked %s)\n",
		s.Slot, s.Final, quizshow.FormatNumber(t.game.Ladder().PrizeForSlot(s.Slot)),
		s.Tier, s.TimeLimit, quizshow.FormatNumber(s.Banked))
	fmt.Fprintf(t.out, "%s\n", s.Question.Text)
	t.printOptions(s)

	var left []string
	for _, kind := range quizshow.AllLifelines {
		if !s.Lifelines[kind] {
			left = append(left, string(kind))
		}
	}
	if len(left) > 0 {
		fmt.Fprintf(t.out, "Lifelines left: %s\n", strings.Join(left, ", "))
	}
}

func (t *terminal) printOptions(s quizshow.Snapshot) {
	for i, opt := range s.Question.Options {
		if s.Display.IsEliminated(i) {
			fmt.Fprintf(t.out, "  %c: -\n", optionLetters[i])
			continue
		}
		fmt.Fprintf(t.out, "  %c: %s\n", optionLetters[i], opt)
	}
}

func (t *terminal) printAids(s quizshow.Snapshot) {
	aid := s.Display.Aids[len(s.Display.Aids)-1]
	switch aid.Kind {
	case quizshow.LifelineSplit:
		t.printOptions(s)
	case quizshow.LifelineHint:
		fmt.Fprintf(t.out, "  Documentation: %s\n", aid.Hint)
	case quizshow.LifelinePoll:
		for i, pct := range aid.Poll {
			if i < len(optionLetters) {
				fmt.Fprintf(t.out, "  %c: %3d%% %s\n", optionLetters[i], pct, strings.Repeat("#", pct/5))
			}
		}
	case quizshow.LifelineTrace:
		fmt.Fprintf(t.out, "  Debug trace:\n%s\n", aid.Trace)
	}
}

func (t *terminal) printReveal(s quizshow.Snapshot) {
	correct := s.Question.CorrectAnswer
	if s.Correct != nil && *s.Correct {
		fmt.Fprintf(t.out, "  Correct! %c: %s\n", optionLetters[correct], s.Question.Options[correct])
		return
	}
	fmt.Fprintf(t.out, "  Wrong. The answer was %c: %s\n", optionLetters[correct], s.Question.Options[correct])
}

func (t *terminal) printSummary(s quizshow.Snapshot) {
	summary := quizshow.Summarize(s.Status, s.Winnings, t.game.Answered(), nil, "")
	fmt.Fprintf(t.out, "\n%s\n%s\n", summary.Title, summary.Message)
	for _, a := range summary.Answered {
		mark := "x"
		if a.Correct {
			mark = "+"
		}
		fmt.Fprintf(t.out, "  %s %2d  %s\n", mark, a.Slot, a.Question)
	}
}
