package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepFields_CoverEveryValidatedField(t *testing.T) {
	seen := map[Field]Step{}
	for _, s := range Steps() {
		for _, f := range StepFields(s) {
			prev, dup := seen[f]
			assert.False(t, dup, "field %s listed in step %d and %d", f, prev, s)
			seen[f] = s
			assert.True(t, f.Known(), "step field %s must be known", f)
		}
	}
	assert.Len(t, StepFields(StepArtifacts), 6)
	assert.Nil(t, StepFields(Step(9)))
}

func TestStep_Valid(t *testing.T) {
	assert.False(t, Step(0).Valid())
	assert.True(t, StepBasics.Valid())
	assert.True(t, StepArtifacts.Valid())
	assert.False(t, Step(5).Valid())
	assert.Equal(t, "Step(7)", Step(7).String())
}

func TestSet(t *testing.T) {
	form := DefaultFormData()

	require.NoError(t, Set(&form, FieldTitle, "Fractions"))
	require.NoError(t, Set(&form, FieldCompetencies, []string{"MA.1.A.1"}))
	require.NoError(t, Set(&form, FieldLegalTermsAccepted, true))

	assert.Equal(t, "Fractions", form.Title)
	assert.Equal(t, []string{"MA.1.A.1"}, form.Competencies)
	assert.True(t, form.LegalTermsAccepted)

	assert.ErrorIs(t, Set(&form, Field("nope"), "x"), ErrUnknownField)
	assert.ErrorIs(t, Set(&form, FieldTitle, 42), ErrFieldType)
	assert.ErrorIs(t, Set(&form, FieldEditable, "yes"), ErrFieldType)
	assert.ErrorIs(t, Set(&form, FieldFiles, []string{"a.pdf"}), ErrReadOnlyField)
	assert.Equal(t, "Fractions", form.Title, "failed Set must not touch the form")
}

func TestSet_CopiesSlices(t *testing.T) {
	form := DefaultFormData()
	in := []string{"a", "b"}
	require.NoError(t, Set(&form, FieldLehrmittelIDs, in))
	in[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, form.LehrmittelIDs)
}

func TestGet(t *testing.T) {
	form := DefaultFormData()
	form.Price = "2.50"
	form.FileNames = []string{"sheet.pdf"}

	v, err := Get(form, FieldPrice)
	require.NoError(t, err)
	assert.Equal(t, "2.50", v)

	v, err = Get(form, FieldFiles)
	require.NoError(t, err)
	assert.Equal(t, []string{"sheet.pdf"}, v)

	_, err = Get(form, Field("missing"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		raw     string
		want    any
		wantErr error
	}{
		{"string kept verbatim", FieldTitle, "  Hello  ", "  Hello  ", nil},
		{"list split and trimmed", FieldCompetencies, "a, b,,c ", []string{"a", "b", "c"}, nil},
		{"empty list", FieldCompetencies, "", []string{}, nil},
		{"bool", FieldEditable, "true", true, nil},
		{"bad bool", FieldEditable, "maybe", nil, ErrFieldType},
		{"files read-only", FieldFiles, "a.pdf", nil, ErrReadOnlyField},
		{"unknown", Field("x"), "1", nil, ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.field, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	form := DefaultFormData()
	form.Competencies = []string{"x"}
	c := form.Clone()
	c.Competencies[0] = "y"
	assert.Equal(t, "x", form.Competencies[0])
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worksheet.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "worksheet.pdf", f.Name)
	assert.Equal(t, int64(8), f.Size)
	assert.Equal(t, "application/pdf", f.ContentType)

	_, err = OpenFile(dir)
	assert.Error(t, err)

	_, err = OpenFiles([]string{path, filepath.Join(dir, "missing.pdf")})
	assert.Error(t, err)

	assert.Equal(t, []string{"worksheet.pdf"}, FileNames([]File{f}))
	assert.Equal(t, []string{}, FileNames(nil))
}
