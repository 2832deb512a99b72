// Package validation implements the per-step rules of the listing wizard.
// Every function here is pure: it reads the form and attachments, never
// mutates them, and reports problems as FieldError values.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/listwiz/internal/listing"
)

// Length bounds, counted in runes after trimming.
const (
	TitleMin       = 5
	TitleMax       = 64
	DescriptionMin = 20
	DescriptionMax = 2000
)

var legalMessages = map[listing.Field]string{
	listing.FieldLegalOwnContent:       "Confirm that the material is your own work",
	listing.FieldLegalNoTextbookCopies: "Confirm that no textbook pages are copied",
	listing.FieldLegalNoTrademarks:     "Confirm that no protected trademarks or logos are used",
	listing.FieldLegalSwissGuidelines:  "Confirm that the material follows the curriculum guidelines",
	listing.FieldLegalTermsAccepted:    "Accept the seller terms",
}

// ErrorsForStep returns every validation error for step. Unknown steps
// have no errors. The result is deterministic for identical input.
func ErrorsForStep(step listing.Step, form listing.FormData, att listing.Attachments) []listing.FieldError {
	var errs []listing.FieldError
	switch step {
	case listing.StepBasics:
		errs = basicsErrors(form)
	case listing.StepClassification:
		errs = classificationErrors(form)
	case listing.StepCommercial:
		errs = commercialErrors(form)
	case listing.StepArtifacts:
		errs = artifactErrors(form, att)
	}
	return errs
}

// IsStepValid reports whether step has no validation errors.
func IsStepValid(step listing.Step, form listing.FormData, att listing.Attachments) bool {
	return len(ErrorsForStep(step, form, att)) == 0
}

// ValidateAll runs every step regardless of touched state. Only steps with
// errors appear in the result.
func ValidateAll(form listing.FormData, att listing.Attachments) map[listing.Step][]listing.FieldError {
	out := map[listing.Step][]listing.FieldError{}
	for _, s := range listing.Steps() {
		if errs := ErrorsForStep(s, form, att); len(errs) > 0 {
			out[s] = errs
		}
	}
	return out
}

// FirstInvalidStep returns the lowest step present in a ValidateAll result.
func FirstInvalidStep(all map[listing.Step][]listing.FieldError) (listing.Step, bool) {
	for _, s := range listing.Steps() {
		if len(all[s]) > 0 {
			return s, true
		}
	}
	return 0, false
}

func basicsErrors(form listing.FormData) []listing.FieldError {
	var errs []listing.FieldError
	errs = appendLength(errs, listing.FieldTitle, "Title", form.Title, TitleMin, TitleMax)
	errs = appendLength(errs, listing.FieldDescription, "Description", form.Description, DescriptionMin, DescriptionMax)
	errs = appendEnum(errs, listing.FieldLanguage, "Language", form.Language, listing.Languages)
	if form.Language == listing.LanguageGerman {
		errs = appendEnum(errs, listing.FieldDialect, "Dialect", form.Dialect, listing.Dialects)
	}
	errs = appendEnum(errs, listing.FieldResourceType, "Resource type", form.ResourceType, listing.ResourceTypes)
	return errs
}

func classificationErrors(form listing.FormData) []listing.FieldError {
	var errs []listing.FieldError
	errs = appendEnum(errs, listing.FieldCycle, "Cycle", form.Cycle, listing.Cycles)
	if strings.TrimSpace(form.Subject) == "" {
		errs = append(errs, required(listing.FieldSubject, "Subject"))
	}
	if form.Canton != "" && !listing.Contains(listing.Cantons, form.Canton) {
		errs = append(errs, invalid(listing.FieldCanton, "Canton"))
	}
	if len(form.Competencies) > listing.MaxCompetencies {
		errs = append(errs, listing.FieldError{
			Field:   listing.FieldCompetencies,
			Code:    listing.CodeTooMany,
			Message: fmt.Sprintf("Select at most %d competencies", listing.MaxCompetencies),
		})
	}
	return errs
}

func commercialErrors(form listing.FormData) []listing.FieldError {
	var errs []listing.FieldError
	errs = appendEnum(errs, listing.FieldPriceType, "Price type", form.PriceType, listing.PriceTypes)
	if form.PriceType == listing.PricePaid {
		if e, bad := priceError(form.Price); bad {
			errs = append(errs, e)
		}
	}
	errs = appendEnum(errs, listing.FieldLicenseScope, "Licence", form.LicenseScope, listing.LicenseScopes)
	return errs
}

func artifactErrors(form listing.FormData, att listing.Attachments) []listing.FieldError {
	var errs []listing.FieldError
	if len(att.Files) == 0 {
		errs = append(errs, listing.FieldError{
			Field:   listing.FieldFiles,
			Code:    listing.CodeRequired,
			Message: "Attach at least one file",
		})
	}
	legal := form.Legal()
	for _, f := range listing.LegalFields() {
		if !legal[f] {
			errs = append(errs, listing.FieldError{
				Field:   f,
				Code:    listing.CodeUnconfirmed,
				Message: legalMessages[f],
			})
		}
	}
	return errs
}

// priceError applies the paid-price rules in order; the first failure wins.
func priceError(raw string) (listing.FieldError, bool) {
	f := listing.FieldPrice
	if strings.TrimSpace(raw) == "" {
		return required(f, "Price"), true
	}
	a, ok := parseAmount(raw)
	if !ok {
		return listing.FieldError{Field: f, Code: listing.CodeInvalid, Message: "Price must be a number"}, true
	}
	if a.negative {
		return listing.FieldError{Field: f, Code: listing.CodeNegative, Message: "Price cannot be negative"}, true
	}
	if a.tooLarge || a.cents > MaxPriceCents || (a.cents == MaxPriceCents && a.subCent) {
		return listing.FieldError{Field: f, Code: listing.CodeMax, Message: "Price must not exceed 50.00"}, true
	}
	if a.positive() && a.cents < MinPriceCents {
		return listing.FieldError{Field: f, Code: listing.CodeMin, Message: "Price must be at least 0.50"}, true
	}
	if a.subCent || a.cents%PriceStepCents != 0 {
		return listing.FieldError{Field: f, Code: listing.CodeStep, Message: "Price must be a multiple of 0.50"}, true
	}
	return listing.FieldError{}, false
}

func appendLength(errs []listing.FieldError, f listing.Field, label, value string, lo, hi int) []listing.FieldError {
	trimmed := strings.TrimSpace(value)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n == 0:
		return append(errs, required(f, label))
	case n < lo:
		return append(errs, listing.FieldError{
			Field:   f,
			Code:    listing.CodeTooShort,
			Message: fmt.Sprintf("%s must be at least %d characters", label, lo),
		})
	case n > hi:
		return append(errs, listing.FieldError{
			Field:   f,
			Code:    listing.CodeTooLong,
			Message: fmt.Sprintf("%s must be at most %d characters", label, hi),
		})
	}
	return errs
}

func appendEnum(errs []listing.FieldError, f listing.Field, label, value string, allowed []string) []listing.FieldError {
	if value == "" {
		return append(errs, required(f, label))
	}
	if !listing.Contains(allowed, value) {
		return append(errs, invalid(f, label))
	}
	return errs
}

func required(f listing.Field, label string) listing.FieldError {
	return listing.FieldError{Field: f, Code: listing.CodeRequired, Message: label + " is required"}
}

func invalid(f listing.Field, label string) listing.FieldError {
	return listing.FieldError{Field: f, Code: listing.CodeInvalid, Message: label + " has an unsupported value"}
}
