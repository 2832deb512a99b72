package validation

import (
	"strings"

	"github.com/mark3labs/listwiz/internal/listing"
)

// IsStepComplete is the looser "looks filled in" predicate used for step
// indicators. A complete step may still carry strict errors, e.g. a title
// that is present but too short.
func IsStepComplete(step listing.Step, form listing.FormData, att listing.Attachments) bool {
	switch step {
	case listing.StepBasics:
		return strings.TrimSpace(form.Title) != "" && strings.TrimSpace(form.Description) != ""
	case listing.StepClassification:
		return form.Cycle != "" && strings.TrimSpace(form.Subject) != ""
	case listing.StepCommercial:
		return form.PriceType == listing.PriceFree ||
			(form.PriceType == listing.PricePaid && strings.TrimSpace(form.Price) != "")
	case listing.StepArtifacts:
		if len(att.Files) == 0 {
			return false
		}
		for _, ok := range form.Legal() {
			if !ok {
				return false
			}
		}
		return true
	}
	return false
}
