package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/common"
)

// Analysis is one stored diagnosis owned by UserID.
type Analysis struct {
	ID               string
	UserID           string
	PlantSpeciesID   string
	DiseaseID        string
	DiseaseStage     int
	Severity         common.Severity
	ConfidenceScore  float64
	ImageURL         string
	SegmentationData json.RawMessage
	TreatmentApplied *string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
