package classifyqualification

import "homebuyer-prequal/internal/models"

type Input struct {
	Intake *models.IntakeRecord `json:"intake"`
}

type Output struct {
	Qualifies             bool                         `json:"qualifies"`
	QualificationCategory models.QualificationCategory `json:"qualificationCategory"`
	Disqualifiers         []models.Disqualifier        `json:"disqualifiers"`
	FixReasons            []models.FixReason           `json:"fixReasons"`
}
