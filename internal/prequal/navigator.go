// Package prequal holds the pre-qualification rules: step navigation,
// qualification, scoring, recommendations and the submission transform.
// Everything here is pure and safe for concurrent use.
package prequal

import (
	"fmt"
	"sort"

	"homebuyer-prequal/internal/models"
)

// Step is a 1-based questionnaire step index.
type Step int

const (
	StepTimeline Step = iota + 1
	StepFirstTimeBuyer
	StepEmployment
	StepSelfEmployment
	StepIncome
	StepCredit
	StepCreditIssues
	StepDownPayment
	StepAssistance
	StepMonthlyDebts
	StepIdentification
	StepSummary
)

// TotalStepCount is the number of steps in the default questionnaire.
const TotalStepCount = int(StepSummary)

var stepNames = map[Step]string{
	StepTimeline:       "timeline",
	StepFirstTimeBuyer: "first-time-buyer",
	StepEmployment:     "employment",
	StepSelfEmployment: "self-employment",
	StepIncome:         "income",
	StepCredit:         "credit",
	StepCreditIssues:   "credit-issues",
	StepDownPayment:    "down-payment",
	StepAssistance:     "assistance",
	StepMonthlyDebts:   "monthly-debts",
	StepIdentification: "identification",
	StepSummary:        "summary",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step-%d", int(s))
}

// ParseStep resolves a step name such as "income".
func ParseStep(name string) (Step, bool) {
	for step, n := range stepNames {
		if n == name {
			return step, true
		}
	}
	return 0, false
}

// Predicate decides whether an Edge applies to a record.
type Predicate func(r *models.IntakeRecord) bool

// Edge skips from From straight to To when When holds. The same edge is
// followed in reverse by PreviousStep.
type Edge struct {
	Name string
	From Step
	To   Step
	When Predicate
}

// IsUnemployed is the predicate of the default income skip.
func IsUnemployed(r *models.IntakeRecord) bool {
	return r.EmploymentType == models.EmploymentUnemployed
}

// DefaultEdges skips self-employment and income for unemployed respondents.
func DefaultEdges() []Edge {
	return []Edge{
		{Name: "unemployed-skips-income", From: StepEmployment, To: StepCredit, When: IsUnemployed},
	}
}

// Navigator moves between steps. Construct with NewNavigator.
type Navigator struct {
	total int
	edges []Edge
}

// NewNavigator validates the edge table. Every edge must skip forward by at
// least one step, stay inside [1, total], and not share any step with
// another edge's span, so each step has at most one way in and one way out.
func NewNavigator(total int, edges []Edge) (*Navigator, error) {
	if total < 1 {
		return nil, fmt.Errorf("total steps must be positive, got %d", total)
	}

	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	for i, e := range sorted {
		if e.When == nil {
			return nil, fmt.Errorf("edge %q has no predicate", e.Name)
		}
		if e.From < 1 || int(e.To) > total {
			return nil, fmt.Errorf("edge %q (%d->%d) leaves the step range [1, %d]", e.Name, e.From, e.To, total)
		}
		if e.To <= e.From+1 {
			return nil, fmt.Errorf("edge %q (%d->%d) must skip forward over at least one step", e.Name, e.From, e.To)
		}
		if i > 0 && sorted[i-1].To >= e.From {
			return nil, fmt.Errorf("edge %q overlaps edge %q", e.Name, sorted[i-1].Name)
		}
	}

	return &Navigator{total: total, edges: sorted}, nil
}

// MustNavigator is NewNavigator that panics on an invalid table.
func MustNavigator(total int, edges []Edge) *Navigator {
	n, err := NewNavigator(total, edges)
	if err != nil {
		panic(err)
	}
	return n
}

var defaultNavigator = MustNavigator(TotalStepCount, DefaultEdges())

// DefaultNavigator returns the twelve-step questionnaire navigator.
func DefaultNavigator() *Navigator {
	return defaultNavigator
}

func (n *Navigator) TotalSteps() int {
	return n.total
}

// Clamp pulls any index into [1, TotalSteps].
func (n *Navigator) Clamp(s Step) Step {
	if s < 1 {
		return 1
	}
	if int(s) > n.total {
		return Step(n.total)
	}
	return s
}

// NextStep returns the step after current. The last step maps to itself.
func (n *Navigator) NextStep(current Step, r *models.IntakeRecord) Step {
	current = n.Clamp(current)
	if int(current) == n.total {
		return current
	}
	r = orEmpty(r)
	for _, e := range n.edges {
		if e.From == current && e.When(r) {
			return e.To
		}
	}
	return current + 1
}

// PreviousStep mirrors NextStep. The first step maps to itself.
func (n *Navigator) PreviousStep(current Step, r *models.IntakeRecord) Step {
	current = n.Clamp(current)
	if current == 1 {
		return current
	}
	r = orEmpty(r)
	for _, e := range n.edges {
		if e.To == current && e.When(r) {
			return e.From
		}
	}
	return current - 1
}

// Path lists the steps a record visits from the first step to the last.
func (n *Navigator) Path(r *models.IntakeRecord) []Step {
	path := []Step{1}
	for s := Step(1); int(s) < n.total; {
		s = n.NextStep(s, r)
		path = append(path, s)
	}
	return path
}

func NextStep(current Step, r *models.IntakeRecord) Step {
	return defaultNavigator.NextStep(current, r)
}

func PreviousStep(current Step, r *models.IntakeRecord) Step {
	return defaultNavigator.PreviousStep(current, r)
}

func TotalSteps() int {
	return defaultNavigator.TotalSteps()
}

func orEmpty(r *models.IntakeRecord) *models.IntakeRecord {
	if r == nil {
		return &models.IntakeRecord{}
	}
	return r
}
