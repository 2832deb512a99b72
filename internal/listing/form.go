// Package listing holds the marketplace listing draft model shared by the
// validation engine, the wizard and the persistence layer.
package listing

// Supported languages.
const (
	LanguageGerman  = "de"
	LanguageEnglish = "en"
	LanguageFrench  = "fr"
	LanguageItalian = "it"
)

// Dialects, only meaningful for German listings.
const (
	DialectStandard = "STANDARD"
	DialectSwiss    = "SWISS"
	DialectBoth     = "BOTH"
)

// Price types.
const (
	PriceFree = "free"
	PricePaid = "paid"
)

// Licence scopes.
const (
	LicenseIndividual = "individual"
	LicenseSchool     = "school"
)

// MaxCompetencies caps the number of competency codes per listing.
const MaxCompetencies = 5

var (
	Languages     = []string{LanguageGerman, LanguageEnglish, LanguageFrench, LanguageItalian}
	Dialects      = []string{DialectStandard, DialectSwiss, DialectBoth}
	ResourceTypes = []string{"pdf", "word", "powerpoint", "excel", "onenote", "other"}
	PriceTypes    = []string{PriceFree, PricePaid}
	LicenseScopes = []string{LicenseIndividual, LicenseSchool}
	Cycles        = []string{"1", "2", "3"}
	Cantons       = []string{
		"AG", "AI", "AR", "BE", "BL", "BS", "FR", "GE", "GL", "GR", "JU", "LU", "NE",
		"NW", "OW", "SG", "SH", "SO", "SZ", "TG", "TI", "UR", "VD", "VS", "ZG", "ZH",
	}
)

// FormData is the mutable draft payload. JSON keys are part of the
// persisted snapshot format.
type FormData struct {
	// Basics
	Title        string `json:"title"`
	Description  string `json:"description"`
	Language     string `json:"language"`
	Dialect      string `json:"dialect"`
	ResourceType string `json:"resourceType"`

	// Classification
	Cycle         string   `json:"cycle"`
	Subject       string   `json:"subject"`
	SubjectCode   string   `json:"subjectCode"`
	Canton        string   `json:"canton"`
	Competencies  []string `json:"competencies"`
	LehrmittelIDs []string `json:"lehrmittelIds"`

	// Commercial terms
	PriceType    string `json:"priceType"`
	Price        string `json:"price"`
	Editable     bool   `json:"editable"`
	LicenseScope string `json:"licenseScope"`

	// Artifacts & legal. FileNames and PreviewFileNames mirror the
	// transient attachments and are never a source of truth.
	FileNames             []string `json:"fileNames"`
	PreviewFileNames      []string `json:"previewFileNames"`
	LegalOwnContent       bool     `json:"legalOwnContent"`
	LegalNoTextbookCopies bool     `json:"legalNoTextbookCopies"`
	LegalNoTrademarks     bool     `json:"legalNoTrademarks"`
	LegalSwissGuidelines  bool     `json:"legalSwissGuidelines"`
	LegalTermsAccepted    bool     `json:"legalTermsAccepted"`
}

// DefaultFormData returns the form a fresh wizard starts with.
func DefaultFormData() FormData {
	return FormData{
		Language:         LanguageGerman,
		Dialect:          DialectBoth,
		ResourceType:     "pdf",
		Competencies:     []string{},
		LehrmittelIDs:    []string{},
		PriceType:        PricePaid,
		LicenseScope:     LicenseIndividual,
		FileNames:        []string{},
		PreviewFileNames: []string{},
	}
}

// Clone returns a deep copy so callers can never alias the wizard's slices.
func (f FormData) Clone() FormData {
	f.Competencies = cloneStrings(f.Competencies)
	f.LehrmittelIDs = cloneStrings(f.LehrmittelIDs)
	f.FileNames = cloneStrings(f.FileNames)
	f.PreviewFileNames = cloneStrings(f.PreviewFileNames)
	return f
}

// Legal returns the five confirmation flags keyed by field.
func (f FormData) Legal() map[Field]bool {
	return map[Field]bool{
		FieldLegalOwnContent:       f.LegalOwnContent,
		FieldLegalNoTextbookCopies: f.LegalNoTextbookCopies,
		FieldLegalNoTrademarks:     f.LegalNoTrademarks,
		FieldLegalSwissGuidelines:  f.LegalSwissGuidelines,
		FieldLegalTermsAccepted:    f.LegalTermsAccepted,
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Contains reports whether v is one of the allowed values.
func Contains(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
