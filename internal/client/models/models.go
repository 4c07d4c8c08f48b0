// Package models defines the client-side view of PlantGuard data: the signed
// in identity, reference catalog entries and analysis records.
package models

import (
	"time"

	"github.com/dmitrijs2005/plantguard/internal/common"
)

type Identity struct {
	ID       string
	Email    string
	Metadata map[string]any
}

// Session is what the backend client holds for a signed-in identity. Tokens
// stay inside the client.
type Session struct {
	Identity *Identity
}

type AuthEventKind string

const (
	EventInitialSession AuthEventKind = "INITIAL_SESSION"
	EventSignedIn       AuthEventKind = "SIGNED_IN"
	EventSignedOut      AuthEventKind = "SIGNED_OUT"
	EventTokenRefreshed AuthEventKind = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEventKind = "USER_UPDATED"
)

// AuthEvent is pushed by the backend client whenever its session changes.
// Session is nil for signed-out states. Seq increases with every event one
// backend client emits; INITIAL_SESSION repeats the last emitted Seq.
type AuthEvent struct {
	Kind    AuthEventKind
	Session *Session
	Seq     uint64
}

type PlantSpecies struct {
	ID             string
	Name           string
	ScientificName string
	Description    string
	CommonDiseases []string
}

type TreatmentStep struct {
	Step   int
	Action string
}

type Disease struct {
	ID          string
	Name        string
	Description string
	Stages      [4]string
	Treatment   []TreatmentStep
}

// StageDescription returns the description of stage 1..4, or "" outside the
// range.
func (d *Disease) StageDescription(stage int) string {
	if stage < common.MinDiseaseStage || stage > common.MaxDiseaseStage {
		return ""
	}
	return d.Stages[stage-1]
}

// Analysis is one stored diagnosis. ImageURL is either an inline data URI or
// a URL into object storage.
type Analysis struct {
	ID               string
	UserID           string
	PlantSpeciesID   string
	DiseaseID        string
	DiseaseStage     int
	Severity         common.Severity
	ConfidenceScore  float64
	ImageURL         string
	SegmentationData map[string]any
	TreatmentApplied string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
