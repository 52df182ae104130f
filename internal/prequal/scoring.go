package prequal

import (
	"math"

	"homebuyer-prequal/internal/models"
)

const (
	maxSubScore = 10.0

	minCreditScore = 300
	maxCreditScore = 850

	// Annual income that earns the full income sub-score.
	fullIncomeAnnual = 100000.0
	// Each step of this size on top of a saved down payment adds one point.
	downPaymentStep = 5000.0
)

var creditCategoryScores = map[models.CreditCategory]float64{
	models.CreditExcellent: 10,
	models.CreditGood:      8,
	models.CreditFair:      6,
	models.CreditPoor:      3,
	models.CreditUnknown:   5,
}

var creditIssuePenalties = map[models.CreditIssueKind]float64{
	models.CreditIssueBankruptcy:  3,
	models.CreditIssueForeclosure: 3,
	models.CreditIssueCollections: 1.5,
	models.CreditIssueMedical:     0.5,
	models.CreditIssueOther:       1,
}

var documentationScores = map[models.IDType]float64{
	models.IDTypeSSN:  10,
	models.IDTypeITIN: 7,
	models.IDTypeNone: 0,
}

var timelineScores = map[models.Timeline]float64{
	models.TimelineImmediately:   10,
	models.TimelineWithin3Months: 8,
	models.Timeline3To6Months:    6,
	models.Timeline6To12Months:   4,
	models.TimelineExploring:     2,
}

// Score for a question that has not been answered yet.
const unansweredScore = 3.0

// Weights of each sub-score in the overall score. They need not sum to one.
type Weights struct {
	Credit        float64
	Income        float64
	DownPayment   float64
	Documentation float64
	Readiness     float64
}

func DefaultWeights() Weights {
	return Weights{
		Credit:        0.30,
		Income:        0.25,
		DownPayment:   0.20,
		Documentation: 0.15,
		Readiness:     0.10,
	}
}

func (w Weights) total() float64 {
	return w.Credit + w.Income + w.DownPayment + w.Documentation + w.Readiness
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights replaces the default weights. Weights with a negative entry or a
// zero total are ignored.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.Credit < 0 || w.Income < 0 || w.DownPayment < 0 || w.Documentation < 0 || w.Readiness < 0 {
			return
		}
		if w.total() <= 0 {
			return
		}
		s.weights = w
	}
}

// Scorer computes suitability scores.
type Scorer struct {
	weights Weights
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScorer = NewScorer()

// Score rates a record. Every sub-score is in [0,10] with one decimal, and
// Overall always lies between the lowest and highest sub-score.
func (s *Scorer) Score(r *models.IntakeRecord) models.SuitabilityScore {
	r = orEmpty(r)

	score := models.SuitabilityScore{
		Credit:        round1(creditSubScore(r)),
		Income:        round1(incomeSubScore(r)),
		DownPayment:   round1(downPaymentSubScore(r)),
		Documentation: round1(documentationSubScore(r)),
		Readiness:     round1(readinessSubScore(r)),
	}
	score.Overall = s.overall(score)
	return score
}

func (s *Scorer) overall(score models.SuitabilityScore) float64 {
	w := s.weights
	weighted := score.Credit*w.Credit +
		score.Income*w.Income +
		score.DownPayment*w.DownPayment +
		score.Documentation*w.Documentation +
		score.Readiness*w.Readiness

	lo, hi := bounds(score.SubScores())
	return clamp(round1(weighted/w.total()), lo, hi)
}

func Score(r *models.IntakeRecord) models.SuitabilityScore {
	return defaultScorer.Score(r)
}

// CreditCategoryScore rates a self-reported credit category. An unanswered
// category scores the same as "unknown".
func CreditCategoryScore(c models.CreditCategory) float64 {
	if score, ok := creditCategoryScores[c]; ok {
		return score
	}
	return creditCategoryScores[models.CreditUnknown]
}

func creditSubScore(r *models.IntakeRecord) float64 {
	score := CreditCategoryScore(r.CreditCategory)
	if r.CreditScore != nil {
		reported := float64(*r.CreditScore-minCreditScore) / float64(maxCreditScore-minCreditScore) * maxSubScore
		reported = clamp(reported, 0, maxSubScore)
		if r.CreditCategory == models.CreditUnanswered {
			score = reported
		} else {
			score = (score + reported) / 2
		}
	}

	issues := r.ActiveCreditIssues()
	for _, kind := range models.AllCreditIssueKinds() {
		if issues.Flagged(kind) {
			score -= creditIssuePenalties[kind]
		}
	}
	return clamp(score, 0, maxSubScore)
}

func incomeSubScore(r *models.IntakeRecord) float64 {
	annual, _ := resolveIncome(r)
	score := math.Min(annual/fullIncomeAnnual*maxSubScore, maxSubScore)

	switch r.EmploymentType {
	case models.EmploymentSelfEmployed1099:
		if y := r.ActiveSelfEmployedYears(); y == nil || *y < minSelfEmployedYears {
			score -= 1.5
		}
	case models.EmploymentOther:
		score -= 0.5
	}
	return clamp(score, 0, maxSubScore)
}

func downPaymentSubScore(r *models.IntakeRecord) float64 {
	switch {
	case r.DownPaymentSaved == nil:
		return 2
	case *r.DownPaymentSaved:
		if r.DownPaymentAmount == nil {
			return 5
		}
		amount := math.Max(*r.DownPaymentAmount, 0)
		return clamp(3+amount/downPaymentStep, 0, maxSubScore)
	case models.IsTrue(r.AssistanceOpen):
		return 3
	default:
		return 1
	}
}

func documentationSubScore(r *models.IntakeRecord) float64 {
	score, ok := documentationScores[r.IDType]
	if !ok {
		score = unansweredScore
	}
	// 1099 income needs tax returns rather than pay stubs.
	if r.EmploymentType == models.EmploymentSelfEmployed1099 {
		score -= 2
	}
	return clamp(score, 0, maxSubScore)
}

func readinessSubScore(r *models.IntakeRecord) float64 {
	if score, ok := timelineScores[r.Timeline]; ok {
		return score
	}
	return unansweredScore
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
