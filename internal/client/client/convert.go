package client

import (
	"github.com/dmitrijs2005/plantguard/internal/apiv1"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/common"
)

func identityFromAPI(u *apiv1.User) *models.Identity {
	if u == nil {
		return nil
	}
	var md map[string]any
	if len(u.Metadata) > 0 {
		md = make(map[string]any, len(u.Metadata))
		for k, v := range u.Metadata {
			md[k] = v
		}
	}
	return &models.Identity{ID: u.ID, Email: u.Email, Metadata: md}
}

func speciesFromAPI(in []*apiv1.PlantSpecies) []*models.PlantSpecies {
	out := make([]*models.PlantSpecies, 0, len(in))
	for _, s := range in {
		out = append(out, &models.PlantSpecies{
			ID:             s.ID,
			Name:           s.Name,
			ScientificName: s.ScientificName,
			Description:    s.Description,
			CommonDiseases: s.CommonDiseases,
		})
	}
	return out
}

func diseasesFromAPI(in []*apiv1.Disease) []*models.Disease {
	out := make([]*models.Disease, 0, len(in))
	for _, d := range in {
		steps := make([]models.TreatmentStep, 0, len(d.Treatment))
		for _, t := range d.Treatment {
			steps = append(steps, models.TreatmentStep{Step: t.Step, Action: t.Action})
		}
		out = append(out, &models.Disease{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Stages:      [4]string{d.Stages.Stage1, d.Stages.Stage2, d.Stages.Stage3, d.Stages.Stage4},
			Treatment:   steps,
		})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func analysisToAPI(a *models.Analysis) (*apiv1.Analysis, error) {
	seg, err := apiv1.EncodeStruct(a.SegmentationData)
	if err != nil {
		return nil, err
	}
	return &apiv1.Analysis{
		UserID:           a.UserID,
		PlantSpeciesID:   a.PlantSpeciesID,
		DiseaseID:        a.DiseaseID,
		DiseaseStage:     int32(a.DiseaseStage),
		Severity:         string(a.Severity),
		ConfidenceScore:  a.ConfidenceScore,
		ImageURL:         a.ImageURL,
		SegmentationData: seg,
		TreatmentApplied: optional(a.TreatmentApplied),
		Notes:            optional(a.Notes),
	}, nil
}

func analysisFromAPI(a *apiv1.Analysis) (*models.Analysis, error) {
	seg, err := apiv1.DecodeStruct(a.SegmentationData)
	if err != nil {
		return nil, err
	}
	return &models.Analysis{
		ID:               a.ID,
		UserID:           a.UserID,
		PlantSpeciesID:   a.PlantSpeciesID,
		DiseaseID:        a.DiseaseID,
		DiseaseStage:     int(a.DiseaseStage),
		Severity:         common.Severity(a.Severity),
		ConfidenceScore:  a.ConfidenceScore,
		ImageURL:         a.ImageURL,
		SegmentationData: seg,
		TreatmentApplied: deref(a.TreatmentApplied),
		Notes:            deref(a.Notes),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}, nil
}
