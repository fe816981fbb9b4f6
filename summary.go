package quizshow

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultShareRepo is the repository whose issue form collects shared scores
const DefaultShareRepo = "https://github.com/yashrajnayak/kaun-banega-developer-scores"

// Summary is the end-of-game artifact shown to the player and shared
type Summary struct {
	Status   GameStatus         `json:"status"`
	Winnings int                `json:"winnings"`
	Title    string             `json:"title"`
	Message  string             `json:"message"`
	Image    string             `json:"image"`
	ShareURL string             `json:"shareUrl,omitempty"`
	Answered []AnsweredQuestion `json:"answered"`
}

// Summarize builds the summary of a finished game. profile may be nil; the
// share URL needs a login.
func Summarize(status GameStatus, winnings int, answered []AnsweredQuestion, profile *Profile, shareRepo string) Summary {
	s := Summary{
		Status:   status,
		Winnings: winnings,
		Title:    SummaryTitle(status),
		Message:  SummaryMessage(status, winnings, profile),
		Image:    summaryImage(status, winnings),
		Answered: append([]AnsweredQuestion(nil), answered...),
	}
	if profile != nil && profile.Login != "" {
		s.ShareURL = ShareURL(shareRepo, profile.Login, status, winnings, answered)
	}
	return s
}

func SummaryTitle(status GameStatus) string {
	switch status {
	case StatusWon:
		return "Congratulations!"
	case StatusWalkAway:
		return "You Walked Away"
	case StatusLost:
		return "Game Over"
	}
	return ""
}

func SummaryMessage(status GameStatus, winnings int, profile *Profile) string {
	suffix := "!"
	if name := profile.FirstName(); name != "" {
		suffix = ", " + name + "!"
	}
	amount := FormatNumber(winnings)

	switch status {
	case StatusWon:
		return fmt.Sprintf("You've reached the top and won %s GitHub Stickers%s", amount, suffix)
	case StatusWalkAway:
		return fmt.Sprintf("You decided to walk away with %s GitHub Stickers%s", amount, suffix)
	case StatusLost:
		if winnings > 0 {
			return fmt.Sprintf("You're going home with %s GitHub Stickers%s", amount, suffix)
		}
		return "Unfortunately, you didn't win any GitHub Stickers" + suffix
	}
	return ""
}

func summaryImage(status GameStatus, winnings int) string {
	const octodex = "https://octodex.github.com/images/"
	if winnings == 0 {
		return octodex + "spectrocat.png"
	}
	switch status {
	case StatusWon:
		return octodex + "jetpacktocat.png"
	case StatusWalkAway:
		return octodex + "nyantocat.gif"
	case StatusLost:
		return octodex + "hubot.jpg"
	}
	return octodex + "octocat-de-los-muertos.jpg"
}

// ShareURL returns a prefilled new-issue link on repo listing the answer log
func ShareURL(repo, login string, status GameStatus, winnings int, answered []AnsweredQuestion) string {
	if repo == "" {
		repo = DefaultShareRepo
	}
	amount := FormatNumber(winnings)
	title := fmt.Sprintf("%s | %s Stickers", login, amount)

	var body strings.Builder
	fmt.Fprintf(&body, "# My Score: %s GitHub Stickers\n\n", amount)
	writeAnswerSection(&body, "## Questions I Answered Correctly:\n", answered, true)
	writeAnswerSection(&body, "## Questions I Missed:\n", answered, false)
	body.WriteString("## Game Status\n")
	fmt.Fprintf(&body, "- Final Status: %s\n", status)

	return strings.TrimRight(repo, "/") + "/issues/new?title=" + url.QueryEscape(title) + "&body=" + url.QueryEscape(body.String())
}

func writeAnswerSection(b *strings.Builder, heading string, answered []AnsweredQuestion, correct bool) {
	wrote := false
	for _, a := range answered {
		if a.Correct != correct {
			continue
		}
		if !wrote {
			b.WriteString(heading)
			wrote = true
		}
		fmt.Fprintf(b, "- Question %d: %s\n", a.Slot, a.Question)
	}
	if wrote {
		b.WriteString("\n")
	}
}
