package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/plantguard/internal/apiv1"
	"github.com/dmitrijs2005/plantguard/internal/common"
	"github.com/dmitrijs2005/plantguard/internal/logging"
	"github.com/dmitrijs2005/plantguard/internal/server/images"
	"github.com/dmitrijs2005/plantguard/internal/server/models"
	"github.com/dmitrijs2005/plantguard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ErrStorageDisabled is returned by RequestImageUpload when no object
// storage is configured.
var ErrStorageDisabled = errors.New("image storage is not configured")

// AnalysisService stores and lists diagnoses. Every operation is scoped to
// the calling user.
type AnalysisService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      images.Store
	log         logging.Logger
}

// NewAnalysisService builds the service. store may be nil, which disables
// presigned uploads.
func NewAnalysisService(db *sql.DB, m repomanager.RepositoryManager, store images.Store, log logging.Logger) *AnalysisService {
	return &AnalysisService{db: db, repomanager: m, images: store, log: log}
}

func validateAnalysis(userID string, a *models.Analysis) error {
	switch {
	case a.PlantSpeciesID == "":
		return common.NewValidationError("plant_species_id is required")
	case a.DiseaseID == "":
		return common.NewValidationError("disease_id is required")
	case a.ImageURL == "":
		return common.NewValidationError("image_url is required")
	}

	want, ok := common.SeverityForStage(a.DiseaseStage)
	if !ok {
		return common.NewValidationError(fmt.Sprintf("disease_stage must be between %d and %d", common.MinDiseaseStage, common.MaxDiseaseStage))
	}
	if a.Severity != want {
		return common.NewValidationError(fmt.Sprintf("severity %q does not match disease stage %d", a.Severity, a.DiseaseStage))
	}
	if a.ConfidenceScore < 0 || a.ConfidenceScore > 100 {
		return common.NewValidationError("confidence_score must be between 0 and 100")
	}

	if apiv1.IsStorageRef(a.ImageURL) {
		key := strings.TrimPrefix(a.ImageURL, apiv1.StorageRefPrefix)
		if !strings.HasPrefix(key, "users/"+userID+"/") {
			return common.ErrorForbidden
		}
	}
	return nil
}

// Insert stores a for userID. The owner is always taken from userID.
func (s *AnalysisService) Insert(ctx context.Context, userID string, a *models.Analysis) (*models.Analysis, error) {
	a.UserID = userID
	if err := validateAnalysis(userID, a); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Analyses(s.db).Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("error creating analysis: %w", err)
	}

	s.log.Info(ctx, "analysis stored", "analysis_id", created.ID, "user_id", userID, "severity", string(created.Severity))
	return created, nil
}

// List returns userID's analyses newest first. Stored object references are
// replaced with presigned download URLs when storage is configured.
func (s *AnalysisService) List(ctx context.Context, userID string) ([]*models.Analysis, error) {
	items, err := s.repomanager.Analyses(s.db).ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing analyses: %w", err)
	}

	if s.images == nil {
		return items, nil
	}
	for _, a := range items {
		if !apiv1.IsStorageRef(a.ImageURL) {
			continue
		}
		url, err := s.images.PresignGet(ctx, strings.TrimPrefix(a.ImageURL, apiv1.StorageRefPrefix))
		if err != nil {
			s.log.Warn(ctx, "presign get failed", "analysis_id", a.ID, "error", err)
			continue
		}
		a.ImageURL = url
	}
	return items, nil
}

// Delete removes analysis id if userID owns it and reports the number of
// rows removed. Another user's analysis, or an id that is not a UUID, yields
// zero, not an error.
func (s *AnalysisService) Delete(ctx context.Context, userID, id string) (int64, error) {
	if id == "" {
		return 0, common.NewValidationError("id is required")
	}

	if _, err := uuid.Parse(id); err != nil {
		s.log.Info(ctx, "analysis delete with malformed id", "analysis_id", id, "user_id", userID)
		return 0, nil
	}

	n, err := s.repomanager.Analyses(s.db).DeleteByIDAndOwner(ctx, id, userID)
	if err != nil {
		return 0, fmt.Errorf("error deleting analysis: %w", err)
	}

	s.log.Info(ctx, "analysis delete", "analysis_id", id, "user_id", userID, "deleted", n)
	return n, nil
}

// RequestImageUpload returns the object reference to store in image_url and
// a presigned PUT URL to upload the bytes to.
func (s *AnalysisService) RequestImageUpload(ctx context.Context, userID, contentType string) (string, string, error) {
	if s.images == nil {
		return "", "", ErrStorageDisabled
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return "", "", common.NewValidationError("content_type must be an image type")
	}

	key, url, err := s.images.PresignPut(ctx, userID, contentType)
	if err != nil {
		return "", "", fmt.Errorf("error presigning upload: %w", err)
	}
	return apiv1.StorageRefPrefix + key, url, nil
}
