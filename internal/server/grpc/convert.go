package grpc

import (
	"github.com/dmitrijs2005/plantguard/internal/apiv1"
	"github.com/dmitrijs2005/plantguard/internal/common"
	"github.com/dmitrijs2005/plantguard/internal/server/models"
)

func userToAPI(u *models.User) *apiv1.User {
	if u == nil {
		return nil
	}
	return &apiv1.User{ID: u.ID, Email: u.Email, Metadata: u.Metadata, CreatedAt: u.CreatedAt}
}

func speciesToAPI(in []*models.PlantSpecies) []*apiv1.PlantSpecies {
	out := make([]*apiv1.PlantSpecies, 0, len(in))
	for _, s := range in {
		out = append(out, &apiv1.PlantSpecies{
			ID:             s.ID,
			Name:           s.Name,
			ScientificName: s.ScientificName,
			Description:    s.Description,
			CommonDiseases: s.CommonDiseases,
		})
	}
	return out
}

func diseasesToAPI(in []*models.Disease) []*apiv1.Disease {
	out := make([]*apiv1.Disease, 0, len(in))
	for _, d := range in {
		steps := make([]apiv1.TreatmentStep, 0, len(d.Treatment))
		for _, t := range d.Treatment {
			steps = append(steps, apiv1.TreatmentStep{Step: t.Step, Action: t.Action})
		}
		out = append(out, &apiv1.Disease{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Stages: apiv1.DiseaseStages{
				Stage1: d.Stages.Stage1,
				Stage2: d.Stages.Stage2,
				Stage3: d.Stages.Stage3,
				Stage4: d.Stages.Stage4,
			},
			Treatment: steps,
		})
	}
	return out
}

func analysisToAPI(a *models.Analysis) *apiv1.Analysis {
	return &apiv1.Analysis{
		ID:               a.ID,
		UserID:           a.UserID,
		PlantSpeciesID:   a.PlantSpeciesID,
		DiseaseID:        a.DiseaseID,
		DiseaseStage:     int32(a.DiseaseStage),
		Severity:         string(a.Severity),
		ConfidenceScore:  a.ConfidenceScore,
		ImageURL:         a.ImageURL,
		SegmentationData: a.SegmentationData,
		TreatmentApplied: a.TreatmentApplied,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func analysisFromAPI(a *apiv1.Analysis) *models.Analysis {
	return &models.Analysis{
		UserID:           a.UserID,
		PlantSpeciesID:   a.PlantSpeciesID,
		DiseaseID:        a.DiseaseID,
		DiseaseStage:     int(a.DiseaseStage),
		Severity:         common.Severity(a.Severity),
		ConfidenceScore:  a.ConfidenceScore,
		ImageURL:         a.ImageURL,
		SegmentationData: a.SegmentationData,
		TreatmentApplied: a.TreatmentApplied,
		Notes:            a.Notes,
	}
}
