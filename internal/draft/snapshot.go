package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/listwiz/internal/listing"
)

// ErrCorrupt is returned by Decode for payloads that parse but cannot be a
// valid snapshot, e.g. a step outside 1..4.
var ErrCorrupt = errors.New("corrupt draft snapshot")

// Snapshot is the unit of persistence. Attachments never appear in it;
// FormData only carries their name mirrors.
type Snapshot struct {
	FormData     listing.FormData `json:"formData"`
	CurrentStep  listing.Step     `json:"currentStep"`
	VisitedSteps []listing.Step   `json:"visitedSteps"`
	LastSavedAt  time.Time        `json:"lastSavedAt"`
}

// Encode serialises the snapshot as JSON.
func (s Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a stored snapshot. Unknown fields are ignored and missing
// form fields keep their defaults.
func Decode(data []byte) (Snapshot, error) {
	s := Snapshot{FormData: listing.DefaultFormData()}
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !s.CurrentStep.Valid() {
		return Snapshot{}, fmt.Errorf("%w: current step %d", ErrCorrupt, s.CurrentStep)
	}
	for _, v := range s.VisitedSteps {
		if !v.Valid() {
			return Snapshot{}, fmt.Errorf("%w: visited step %d", ErrCorrupt, v)
		}
	}
	s.FormData = s.FormData.Clone()
	return s, nil
}
