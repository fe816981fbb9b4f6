package quizshow

// LifelineKind names one of the four one-time aids
type LifelineKind string

const (
	LifelineSplit LifelineKind = "split" // remove two wrong options
	LifelineHint  LifelineKind = "hint"  // show documentation text
	LifelinePoll  LifelineKind = "poll"  // show the audience distribution
	LifelineTrace LifelineKind = "trace" // show a debug snippet
)

// AllLifelines lists the kinds in display order
var AllLifelines = []LifelineKind{LifelineSplit, LifelineHint, LifelinePoll, LifelineTrace}

// Shown when a question has no hint authored
const noHintText = "No documentation available."

// ParseLifeline accepts the canonical names plus the labels used by the UI
func ParseLifeline(s string) (LifelineKind, bool) {
	switch s {
	case "split", "50:50", "5050":
		return LifelineSplit, true
	case "hint", "documentation", "docs":
		return LifelineHint, true
	case "poll":
		return LifelinePoll, true
	case "trace", "debug":
		return LifelineTrace, true
	}
	return "", false
}

// Aid is the effect of a lifeline on the current question. Only the payload
// matching Kind is set.
type Aid struct {
	Kind       LifelineKind `json:"kind"`
	Eliminated []int        `json:"eliminated,omitempty"`
	Hint       string       `json:"hint,omitempty"`
	Poll       []int        `json:"poll,omitempty"`
	Trace      string       `json:"trace,omitempty"`
}

// Display holds the aids applied to the current slot, at most one per kind
type Display struct {
	Aids []Aid `json:"aids,omitempty"`
}

func (d *Display) add(a Aid) {
	for i := range d.Aids {
		if d.Aids[i].Kind == a.Kind {
			d.Aids[i] = a
			return
		}
	}
	d.Aids = append(d.Aids, a)
}

func (d Display) find(kind LifelineKind) (Aid, bool) {
	for _, a := range d.Aids {
		if a.Kind == kind {
			return a, true
		}
	}
	return Aid{}, false
}

// Eliminated returns the option indices removed by the split lifeline
func (d Display) Eliminated() []int {
	a, _ := d.find(LifelineSplit)
	return a.Eliminated
}

// HintText returns the revealed hint, or "" when the hint is not active
func (d Display) HintText() string {
	a, _ := d.find(LifelineHint)
	return a.Hint
}

func (d Display) PollVisible() bool {
	_, ok := d.find(LifelinePoll)
	return ok
}

func (d Display) TraceVisible() bool {
	_, ok := d.find(LifelineTrace)
	return ok
}

// IsEliminated reports whether option index was removed by the split lifeline
func (d Display) IsEliminated(index int) bool {
	for _, e := range d.Eliminated() {
		if e == index {
			return true
		}
	}
	return false
}

func (d Display) clone() Display {
	if len(d.Aids) == 0 {
		return Display{}
	}
	out := Display{Aids: make([]Aid, len(d.Aids))}
	for i, a := range d.Aids {
		a.Eliminated = append([]int(nil), a.Eliminated...)
		a.Poll = append([]int(nil), a.Poll...)
		out.Aids[i] = a
	}
	return out
}

// Lifelines tracks which aids have been spent this session
type Lifelines struct {
	used map[LifelineKind]bool
}

// NewLifelines returns a set with every lifeline available
func NewLifelines() Lifelines {
	return Lifelines{used: make(map[LifelineKind]bool)}
}

// Used reports whether kind has been spent
func (l Lifelines) Used(kind LifelineKind) bool {
	return l.used[kind]
}

// State returns the used flag of every lifeline
func (l Lifelines) State() map[LifelineKind]bool {
	out := make(map[LifelineKind]bool, len(AllLifelines))
	for _, k := range AllLifelines {
		out[k] = l.used[k]
	}
	return out
}

// Use spends kind on q and returns its effect. It does nothing and returns
// false when kind was already spent or there is no question.
func (l *Lifelines) Use(kind LifelineKind, q *Question, rng RandomSource) (Aid, bool) {
	if l.used == nil {
		l.used = make(map[LifelineKind]bool)
	}
	if l.used[kind] || q == nil {
		return Aid{}, false
	}

	aid := Aid{Kind: kind}
	switch kind {
	case LifelineSplit:
		aid.Eliminated = FiftyFiftyOptions(q.CorrectAnswer, rng)
	case LifelineHint:
		aid.Hint = q.Hint
		if aid.Hint == "" {
			aid.Hint = noHintText
		}
	case LifelinePoll:
		aid.Poll = append([]int(nil), q.Poll...)
	case LifelineTrace:
		aid.Trace = q.DebugCode
	default:
		return Aid{}, false
	}

	l.used[kind] = true
	return aid, true
}

// FiftyFiftyOptions returns two wrong option indices to eliminate. One of the
// three wrong options is kept, chosen uniformly.
func FiftyFiftyOptions(correct int, rng RandomSource) []int {
	if rng == nil {
		rng = DefaultRNG()
	}
	wrong := make([]int, 0, OptionCount)
	for i := 0; i < OptionCount; i++ {
		if i != correct {
			wrong = append(wrong, i)
		}
	}

	keep := rng.IntN(len(wrong))
	wrong = append(wrong[:keep], wrong[keep+1:]...)
	return wrong[:2]
}
