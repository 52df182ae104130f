package agentnotify

import (
	"fmt"
	"strings"
	"text/template"

	"homebuyer-prequal/internal/models"
)

var categoryLabels = map[models.QualificationCategory]string{
	models.CategoryReady:       "Ready",
	models.CategoryFixesNeeded: "Fixes needed",
	models.CategoryNotReady:    "Not ready",
}

var (
	subjectTemplate = template.Must(template.New("subject").Parse(
		`New pre-qualification lead: {{.Name}} ({{.Category}})`))

	bodyTemplate = template.Must(template.New("body").Parse(`A new pre-qualification was submitted.

Name:            {{.Name}}
Phone:           {{.Phone}}
Email:           {{.Email}}
Category:        {{.Category}}
{{- if .Score}}
Overall score:   {{.Score}}
{{- end}}
Annual income:   {{.Income}}
Credit:          {{.Credit}}
Employment:      {{.Employment}}
Legal status:    {{.LegalStatus}}
{{- if .Timeline}}
Timeline:        {{.Timeline}}
{{- end}}
Campaign:        {{.Campaign}}
Submission ID:   {{.SubmissionID}}
{{- if .LeadID}}
CRM lead:        {{.LeadID}}
{{- end}}
{{- if .Comments}}

{{.Comments}}
{{- end}}
`))

	smsTemplate = template.Must(template.New("sms").Parse(
		`New {{.Category}} lead: {{.Name}} {{.Phone}}`))
)

type templateData struct {
	Name         string
	Phone        string
	Email        string
	Category     string
	Score        string
	Income       string
	Credit       string
	Employment   string
	LegalStatus  string
	Timeline     string
	Campaign     string
	SubmissionID string
	LeadID       string
	Comments     string
}

func newTemplateData(input *Input) templateData {
	s := input.Submission
	category, ok := categoryLabels[input.QualificationCategory]
	if !ok {
		category = "Unclassified"
	}
	data := templateData{
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		Category:     category,
		Income:       fmt.Sprintf("$%.0f", s.IncomeAnnual),
		Credit:       s.CreditCategory,
		Employment:   s.EmploymentType,
		LegalStatus:  s.LegalStatus,
		Timeline:     string(s.Timeline),
		Campaign:     s.Campaign,
		SubmissionID: input.SubmissionID,
		LeadID:       input.CRMLeadID,
		Comments:     s.Comments,
	}
	if input.OverallScore != nil {
		data.Score = fmt.Sprintf("%.1f / 10", *input.OverallScore)
	}
	return data
}

func render(t *template.Template, data templateData) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return b.String(), nil
}
