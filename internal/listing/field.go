package listing

import "sort"

// Field identifies a single form field. The value matches the JSON key
// used in the persisted snapshot.
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldLanguage     Field = "language"
	FieldDialect      Field = "dialect"
	FieldResourceType Field = "resourceType"

	FieldCycle         Field = "cycle"
	FieldSubject       Field = "subject"
	FieldSubjectCode   Field = "subjectCode"
	FieldCanton        Field = "canton"
	FieldCompetencies  Field = "competencies"
	FieldLehrmittelIDs Field = "lehrmittelIds"

	FieldPriceType    Field = "priceType"
	FieldPrice        Field = "price"
	FieldEditable     Field = "editable"
	FieldLicenseScope Field = "licenseScope"

	FieldFiles        Field = "files"
	FieldPreviewFiles Field = "previewFiles"

	FieldLegalOwnContent       Field = "legalOwnContent"
	FieldLegalNoTextbookCopies Field = "legalNoTextbookCopies"
	FieldLegalNoTrademarks     Field = "legalNoTrademarks"
	FieldLegalSwissGuidelines  Field = "legalSwissGuidelines"
	FieldLegalTermsAccepted    Field = "legalTermsAccepted"
)

// LegalFields returns the five legal confirmation flags in display order.
func LegalFields() []Field {
	return []Field{
		FieldLegalOwnContent,
		FieldLegalNoTextbookCopies,
		FieldLegalNoTrademarks,
		FieldLegalSwissGuidelines,
		FieldLegalTermsAccepted,
	}
}

// kind describes the Go type a field accepts.
type kind int

const (
	kindString kind = iota
	kindStringList
	kindBool
	kindFiles
)

var fieldKinds = map[Field]kind{
	FieldTitle:                 kindString,
	FieldDescription:           kindString,
	FieldLanguage:              kindString,
	FieldDialect:               kindString,
	FieldResourceType:          kindString,
	FieldCycle:                 kindString,
	FieldSubject:               kindString,
	FieldSubjectCode:           kindString,
	FieldCanton:                kindString,
	FieldCompetencies:          kindStringList,
	FieldLehrmittelIDs:         kindStringList,
	FieldPriceType:             kindString,
	FieldPrice:                 kindString,
	FieldEditable:              kindBool,
	FieldLicenseScope:          kindString,
	FieldFiles:                 kindFiles,
	FieldPreviewFiles:          kindFiles,
	FieldLegalOwnContent:       kindBool,
	FieldLegalNoTextbookCopies: kindBool,
	FieldLegalNoTrademarks:     kindBool,
	FieldLegalSwissGuidelines:  kindBool,
	FieldLegalTermsAccepted:    kindBool,
}

// Known reports whether f is a recognised field.
func (f Field) Known() bool {
	_, ok := fieldKinds[f]
	return ok
}

// Editable reports whether f can be assigned through Set. The file fields
// are projections of transient attachments and are not directly writable.
func (f Field) Editable() bool {
	k, ok := fieldKinds[f]
	return ok && k != kindFiles
}

// Fields returns every known field sorted by name.
func Fields() []Field {
	out := make([]Field, 0, len(fieldKinds))
	for f := range fieldKinds {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
