package transformsubmission

import "homebuyer-prequal/internal/models"

type Input struct {
	Intake        *models.IntakeRecord `json:"intake"`
	SelectedAgent string               `json:"selectedAgent"`
}

// Output carries the payload plus the real classifier result. The payload's
// own qualified flag is always true, so gateways should route on
// qualifies/qualificationCategory instead.
type Output struct {
	Submission            models.Submission            `json:"submission"`
	Qualifies             bool                         `json:"qualifies"`
	QualificationCategory models.QualificationCategory `json:"qualificationCategory"`
	IDTypeAnswered        bool                         `json:"idTypeAnswered"`
}
