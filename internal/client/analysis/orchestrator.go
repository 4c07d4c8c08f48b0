package analysis

import (
	"context"

	"github.com/dmitrijs2005/plantguard/internal/client/apperr"
	"github.com/dmitrijs2005/plantguard/internal/client/intake"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/client/session"
	"github.com/dmitrijs2005/plantguard/internal/logging"
	"github.com/dmitrijs2005/plantguard/internal/netx"
)

const (
	msgMissingInput = "Please select an image and plant species"
	msgNotSaved     = "Analysis completed but could not be saved"

	// CompletedNote is stored in the notes of every saved record.
	CompletedNote = "Analysis completed"
)

type sessionView interface {
	Current() session.State
}

type recorder interface {
	InsertAnalysis(ctx context.Context, a *models.Analysis) (*models.Analysis, error)
	RequestImageUpload(ctx context.Context, contentType string) (string, string, error)
}

// Result always carries the diagnosis. Record is set only when the analysis
// was stored.
type Result struct {
	Diagnosis *Diagnosis
	Record    *models.Analysis
}

type Orchestrator struct {
	diagnoser Diagnoser
	session   sessionView
	backend   recorder
	logger    logging.Logger
}

func NewOrchestrator(d Diagnoser, s sessionView, b recorder, l logging.Logger) *Orchestrator {
	return &Orchestrator{diagnoser: d, session: s, backend: b, logger: l.With("module", "analysis")}
}

// Analyze diagnoses img and stores the result for the signed-in user. A
// failed insert is returned as a persistence error together with the
// diagnosis.
func (o *Orchestrator) Analyze(ctx context.Context, img *intake.Image, speciesID string) (*Result, error) {
	if img == nil || img.DataURI == "" || speciesID == "" {
		return nil, apperr.Validation(msgMissingInput)
	}

	d, err := o.diagnoser.Diagnose(ctx, img.DataURI, speciesID)
	if err != nil {
		return nil, err
	}
	res := &Result{Diagnosis: d}

	st := o.session.Current()
	if st.Identity == nil {
		return res, nil
	}

	rec := &models.Analysis{
		UserID:           st.Identity.ID,
		PlantSpeciesID:   speciesID,
		DiseaseID:        d.Disease.ID,
		DiseaseStage:     d.Stage,
		Severity:         d.Severity,
		ConfidenceScore:  d.Confidence,
		ImageURL:         o.storeImage(ctx, img),
		SegmentationData: map[string]any{"segmented": true},
		Notes:            CompletedNote,
	}

	saved, err := o.backend.InsertAnalysis(ctx, rec)
	if err != nil {
		o.logger.Error(ctx, "failed to save analysis", "error", err)
		return res, apperr.Persistence(msgNotSaved, err)
	}
	res.Record = saved

	o.logger.Info(ctx, "analysis saved", "analysis_id", saved.ID, "severity", saved.Severity)
	return res, nil
}

// storeImage puts img into object storage when the backend offers it and
// returns the storage reference. Otherwise, or on any failure, it returns
// the inline data URI.
func (o *Orchestrator) storeImage(ctx context.Context, img *intake.Image) string {
	if len(img.Data) == 0 {
		return img.DataURI
	}

	key, url, err := o.backend.RequestImageUpload(ctx, img.MediaType)
	if err != nil {
		o.logger.Info(ctx, "object storage unavailable, storing image inline", "error", err)
		return img.DataURI
	}

	if err := netx.UploadToPresignedURL(ctx, url, img.MediaType, img.Data); err != nil {
		o.logger.Warn(ctx, "image upload failed, storing image inline", "error", err)
		return img.DataURI
	}
	return key
}
