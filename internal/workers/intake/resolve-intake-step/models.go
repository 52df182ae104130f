package resolveintakestep

import "homebuyer-prequal/internal/models"

type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
	// DirectionPath returns the full path without moving.
	DirectionPath Direction = "path"
)

// Input identifies the current step by index or by name. The name wins when
// both are set. Leaving both unset starts the intake at step 1.
type Input struct {
	CurrentStep     int                  `json:"currentStep"`
	CurrentStepName string               `json:"currentStepName,omitempty"`
	Direction       Direction            `json:"direction"`
	Intake          *models.IntakeRecord `json:"intake"`
}

type Output struct {
	CurrentStep  int      `json:"currentStep"`
	StepName     string   `json:"stepName"`
	TotalSteps   int      `json:"totalSteps"`
	IsFirstStep  bool     `json:"isFirstStep"`
	IsLastStep   bool     `json:"isLastStep"`
	StepsVisited int      `json:"stepsVisited"`
	StepPath     []string `json:"stepPath,omitempty"`
}
