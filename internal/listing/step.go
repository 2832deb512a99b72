package listing

import "fmt"

// Step is one of the four fixed wizard stages.
type Step int

const (
	StepBasics         Step = 1 // Title, description, language
	StepClassification Step = 2 // Cycle, subject, competencies
	StepCommercial     Step = 3 // Price and licence
	StepArtifacts      Step = 4 // Files and legal confirmations
)

// FirstStep and LastStep bound the step order.
const (
	FirstStep = StepBasics
	LastStep  = StepArtifacts
)

// Steps returns all steps in order.
func Steps() []Step {
	return []Step{StepBasics, StepClassification, StepCommercial, StepArtifacts}
}

// Valid reports whether s is one of the four known steps.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepBasics:
		return "Basics"
	case StepClassification:
		return "Classification"
	case StepCommercial:
		return "Commercial terms"
	case StepArtifacts:
		return "Files & legal"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// StepFields returns the fixed set of fields belonging to a step.
// Returns nil for an unknown step.
func StepFields(s Step) []Field {
	var fields []Field
	switch s {
	case StepBasics:
		fields = []Field{FieldTitle, FieldDescription, FieldLanguage, FieldDialect, FieldResourceType}
	case StepClassification:
		fields = []Field{FieldCycle, FieldSubject, FieldCanton, FieldCompetencies}
	case StepCommercial:
		fields = []Field{FieldPriceType, FieldPrice, FieldEditable, FieldLicenseScope}
	case StepArtifacts:
		fields = append([]Field{FieldFiles}, LegalFields()...)
	}
	return fields
}
