package quizshow

// Snapshot is a copy of the game state handed to observers and clients
type Snapshot struct {
	Status    GameStatus            `json:"status"`
	Slot      int                   `json:"slot"`
	Final     int                   `json:"final"`
	Tier      Tier                  `json:"tier"`
	Question  *Question             `json:"question,omitempty"`
	Selected  *int                  `json:"selected,omitempty"`
	Revealed  bool                  `json:"revealed"`
	Correct   *bool                 `json:"correct,omitempty"`
	Pending   bool                  `json:"pending"`
	Display   Display               `json:"display"`
	Lifelines map[LifelineKind]bool `json:"lifelines"`
	Banked    int                   `json:"banked"`
	Winnings  int                   `json:"winnings"`
	TimeLimit int                   `json:"timeLimit"`
}

// Playing reports whether the countdown should be running for this state
func (s Snapshot) Playing() bool {
	return s.Status == StatusInProgress && s.Selected == nil && !s.Revealed && !s.Pending
}

// Masked returns a copy safe to send to a player: the correct answer and the
// lifeline payloads stay hidden until the reveal or the matching aid.
func (s Snapshot) Masked() Snapshot {
	if s.Question == nil || s.Revealed {
		return s
	}
	q := s.Question.clone()
	q.CorrectAnswer = NoAnswer
	q.Hint = ""
	q.DebugCode = ""
	q.Poll = nil
	q.Topic = ""
	s.Question = &q
	return s
}
