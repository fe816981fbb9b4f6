package quizshow

// TierForSlot maps a 1-based slot to its difficulty tier. The ladder is split
// in thirds, so a 15-slot ladder gives 1-5 easy, 6-10 medium, 11-15 hard.
func TierForSlot(slot, ladderLen int) Tier {
	if ladderLen <= 0 {
		ladderLen = len(referenceLadder())
	}
	third := (ladderLen + 2) / 3
	switch {
	case slot <= third:
		return TierEasy
	case slot <= 2*third:
		return TierMedium
	default:
		return TierHard
	}
}

// MusicIntensity returns the background music level for a slot
func MusicIntensity(slot, ladderLen int) string {
	switch TierForSlot(slot, ladderLen) {
	case TierEasy:
		return "low"
	case TierMedium:
		return "medium"
	}
	return "high"
}

// QuestionSelector draws questions for a single play session. A question is
// never repeated within a tier until every question of that tier has been
// drawn once.
type QuestionSelector struct {
	catalog *Catalog
	rng     RandomSource
	used    map[Tier]map[string]bool // question text per tier
	cached  map[int]Question         // slot -> session copy
}

// NewQuestionSelector creates a selector over catalog
func NewQuestionSelector(catalog *Catalog, rng RandomSource) *QuestionSelector {
	if rng == nil {
		rng = DefaultRNG()
	}
	s := &QuestionSelector{
		catalog: catalog,
		rng:     rng,
	}
	s.Reset()
	return s
}

// Reset forgets every draw. Only a new session may call it.
func (s *QuestionSelector) Reset() {
	s.used = make(map[Tier]map[string]bool)
	s.cached = make(map[int]Question)
}

// Select returns the question for slot. Repeated calls for the same slot
// return the same question.
func (s *QuestionSelector) Select(slot int) Question {
	if q, ok := s.cached[slot]; ok {
		return q.clone()
	}

	tier := TierForSlot(slot, len(s.catalog.ladder()))
	pool := s.catalog.ByTier(tier)
	if len(pool) == 0 {
		q := s.fallback(slot)
		s.cached[slot] = q
		VerboseLog("No %s questions in catalog, slot %d falls back to %q", tier, slot, q.Text)
		return q.clone()
	}

	candidates := s.unused(tier, pool)
	if len(candidates) == 0 {
		VerboseLog("All %d %s questions used, clearing tier memory", len(pool), tier)
		delete(s.used, tier)
		candidates = pool
	}

	picked := candidates[s.rng.IntN(len(candidates))].clone()
	if s.used[tier] == nil {
		s.used[tier] = make(map[string]bool)
	}
	s.used[tier][picked.Text] = true

	picked.ID = slot
	s.cached[slot] = picked
	return picked.clone()
}

func (s *QuestionSelector) unused(tier Tier, pool []Question) []Question {
	used := s.used[tier]
	out := make([]Question, 0, len(pool))
	for _, q := range pool {
		if !used[q.Text] {
			out = append(out, q)
		}
	}
	return out
}

// fallback picks the catalog question whose id matches the slot, then the
// first catalog question, then the built-in default.
func (s *QuestionSelector) fallback(slot int) Question {
	var q Question
	switch {
	case len(s.catalog.Questions) == 0:
		q = DefaultQuestion()
	default:
		q = s.catalog.Questions[0]
		for _, c := range s.catalog.Questions {
			if c.ID == slot {
				q = c
				break
			}
		}
	}
	q = q.clone()
	q.ID = slot
	return q
}
