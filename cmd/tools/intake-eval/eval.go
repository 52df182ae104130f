package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"homebuyer-prequal/internal/models"
	"homebuyer-prequal/internal/prequal"
)

// Report is everything the workers would derive from one record.
type Report struct {
	Path            []string                   `json:"path"`
	Qualification   models.QualificationResult `json:"qualification"`
	Score           models.SuitabilityScore    `json:"score"`
	CreditTierLabel string                     `json:"creditTierLabel"`
	Recommendations []models.Recommendation    `json:"recommendations"`
	Submission      models.Submission          `json:"submission"`
}

func runEval(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open record: %w", err)
		}
		defer f.Close()
		in = f
	}

	var record models.IntakeRecord
	if err := json.NewDecoder(in).Decode(&record); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	report := evaluate(&record, evalFlags.agent, evalFlags.locale, evalFlags.year)
	out := cmd.OutOrStdout()
	if evalFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(out, report)
	return nil
}

func evaluate(record *models.IntakeRecord, agent, locale string, year int) Report {
	now := time.Now
	if year > 0 {
		now = func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) }
	}
	classifier := prequal.NewClassifier(now)

	steps := prequal.DefaultNavigator().Path(record)
	path := make([]string, len(steps))
	for i, s := range steps {
		path[i] = s.String()
	}

	return Report{
		Path:            path,
		Qualification:   classifier.Evaluate(record),
		Score:           prequal.Score(record),
		CreditTierLabel: prequal.CreditTierLabel(record.CreditCategory, locale),
		Recommendations: prequal.NewRecommender(classifier).Recommend(record),
		Submission:      prequal.Transform(record, agent),
	}
}

func printReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "Path:          %s\n", strings.Join(r.Path, " -> "))
	fmt.Fprintf(w, "Qualifies:     %t\n", r.Qualification.Qualifies)
	fmt.Fprintf(w, "Category:      %s\n", r.Qualification.Category)
	for _, d := range r.Qualification.Disqualifiers {
		fmt.Fprintf(w, "  disqualifier: %s\n", d)
	}
	for _, f := range r.Qualification.Fixes {
		fmt.Fprintf(w, "  fix:          %s\n", f)
	}
	fmt.Fprintf(w, "Credit tier:   %s\n", r.CreditTierLabel)

	s := r.Score
	fmt.Fprintf(w, "Score:         %.1f (credit %.1f, income %.1f, down payment %.1f, documentation %.1f, readiness %.1f)\n",
		s.Overall, s.Credit, s.Income, s.DownPayment, s.Documentation, s.Readiness)

	fmt.Fprintln(w, "Recommendations:")
	for _, rec := range r.Recommendations {
		priority := string(rec.Priority)
		if priority == "" {
			priority = "-"
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", priority, rec.Title, rec.Description)
	}

	payload, err := json.MarshalIndent(r.Submission, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Submission:    <%v>\n", err)
		return
	}
	fmt.Fprintf(w, "Submission:\n%s\n", payload)
}
