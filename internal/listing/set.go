package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// Set assigns value to field on form. The value's dynamic type must match
// the field: string, []string or bool.
func Set(form *FormData, field Field, value any) error {
	k, ok := fieldKinds[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	switch k {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants string, got %T", ErrFieldType, field, value)
		}
		*stringField(form, field) = s
	case kindStringList:
		l, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s wants []string, got %T", ErrFieldType, field, value)
		}
		*listField(form, field) = cloneStrings(l)
	case kindBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool, got %T", ErrFieldType, field, value)
		}
		*boolField(form, field) = b
	case kindFiles:
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	}
	return nil
}

// Check reports whether Set would accept value for field without applying it.
func Check(field Field, value any) error {
	var scratch FormData
	return Set(&scratch, field, value)
}

// Get returns the current value of field.
func Get(form FormData, field Field) (any, error) {
	k, ok := fieldKinds[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	switch k {
	case kindString:
		return *stringField(&form, field), nil
	case kindStringList:
		return cloneStrings(*listField(&form, field)), nil
	case kindBool:
		return *boolField(&form, field), nil
	default:
		if field == FieldFiles {
			return cloneStrings(form.FileNames), nil
		}
		return cloneStrings(form.PreviewFileNames), nil
	}
}

// ParseValue converts textual input into the type Set expects for field.
// Lists are comma separated; blank entries are dropped.
func ParseValue(field Field, raw string) (any, error) {
	k, ok := fieldKinds[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	switch k {
	case kindString:
		return raw, nil
	case kindStringList:
		out := []string{}
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s wants true/false, got %q", ErrFieldType, field, raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	}
}

func stringField(form *FormData, field Field) *string {
	switch field {
	case FieldTitle:
		return &form.Title
	case FieldDescription:
		return &form.Description
	case FieldLanguage:
		return &form.Language
	case FieldDialect:
		return &form.Dialect
	case FieldResourceType:
		return &form.ResourceType
	case FieldCycle:
		return &form.Cycle
	case FieldSubject:
		return &form.Subject
	case FieldSubjectCode:
		return &form.SubjectCode
	case FieldCanton:
		return &form.Canton
	case FieldPriceType:
		return &form.PriceType
	case FieldPrice:
		return &form.Price
	case FieldLicenseScope:
		return &form.LicenseScope
	}
	panic("listing: no string field " + string(field))
}

func listField(form *FormData, field Field) *[]string {
	switch field {
	case FieldCompetencies:
		return &form.Competencies
	case FieldLehrmittelIDs:
		return &form.LehrmittelIDs
	}
	panic("listing: no list field " + string(field))
}

func boolField(form *FormData, field Field) *bool {
	switch field {
	case FieldEditable:
		return &form.Editable
	case FieldLegalOwnContent:
		return &form.LegalOwnContent
	case FieldLegalNoTextbookCopies:
		return &form.LegalNoTextbookCopies
	case FieldLegalNoTrademarks:
		return &form.LegalNoTrademarks
	case FieldLegalSwissGuidelines:
		return &form.LegalSwissGuidelines
	case FieldLegalTermsAccepted:
		return &form.LegalTermsAccepted
	}
	panic("listing: no bool field " + string(field))
}
