package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/plantguard/internal/apiv1"
	"github.com/dmitrijs2005/plantguard/internal/client/analysis"
	"github.com/dmitrijs2005/plantguard/internal/client/history"
	"github.com/dmitrijs2005/plantguard/internal/client/intake"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/client/router"
)

const timeLayout = "2006-01-02 15:04"

func (a *App) Species(ctx context.Context) error {
	items, err := a.catalog.Species(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No plant species available")
		return nil
	}
	for _, s := range items {
		a.printf("%s  %s (%s)\n", s.ID, s.Name, s.ScientificName)
	}
	return nil
}

// Upload selects the image at path for the next analysis.
func (a *App) Upload(ctx context.Context, path string) error {
	ok, err := a.intake.Select(ctx, intake.File{Path: path})
	if err != nil {
		return err
	}
	if !ok {
		a.println("Not an image file:", path)
		return nil
	}

	img := a.intake.Selected()
	a.printf("Selected %s (%s, %d bytes)\n", img.Name, img.MediaType, len(img.Data))
	return nil
}

// Analyze diagnoses the selected image. An empty speciesID picks the first
// species of the catalog. The diagnosis is printed even when saving it failed.
func (a *App) Analyze(ctx context.Context, speciesID string) error {
	img := a.intake.Selected()
	if speciesID == "" && img != nil {
		items, err := a.catalog.Species(ctx)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			speciesID = items[0].ID
			a.println("Using species", items[0].Name)
		}
	}

	res, err := a.analyzer.Analyze(ctx, img, speciesID)
	if res != nil {
		a.printDiagnosis(res.Diagnosis)
		if res.Record != nil {
			a.println("Saved as", res.Record.ID)
		}
	}
	return err
}

func (a *App) printDiagnosis(d *analysis.Diagnosis) {
	a.printf("Disease:    %s\n", d.Disease.Name)
	a.printf("Stage:      %d %s\n", d.Stage, d.Disease.StageDescription(d.Stage))
	a.printf("Severity:   %s\n", d.Severity)
	a.printf("Confidence: %.1f%%\n", d.Confidence)
	a.printTreatment(d.Disease)
}

func (a *App) printTreatment(d *models.Disease) {
	if d == nil || len(d.Treatment) == 0 {
		return
	}
	a.println("Treatment:")
	for _, s := range d.Treatment {
		a.printf("  %d. %s\n", s.Step, s.Action)
	}
}

func (a *App) SwitchPage(ctx context.Context, page router.Page) error {
	a.mu.Lock()
	a.page = page
	a.mu.Unlock()

	if page == router.PageHistory {
		return a.List(ctx)
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.history.List(ctx)
	if errors.Is(err, history.ErrStale) {
		return nil
	}
	if err != nil {
		return err
	}

	if a.history.State() == history.StateEmpty {
		a.println("No analyses yet")
		return nil
	}
	for _, r := range items {
		a.printf("%s  %s  %-20s  %-8s  %.1f%%\n",
			r.ID, r.CreatedAt.Local().Format(timeLayout), a.diseaseName(ctx, r.DiseaseID), r.Severity, r.ConfidenceScore)
	}
	return nil
}

func (a *App) diseaseName(ctx context.Context, id string) string {
	d, err := a.catalog.DiseaseByID(ctx, id)
	if err != nil || d == nil {
		return id
	}
	return d.Name
}

// Show opens the detail view of a record from the last listing.
func (a *App) Show(ctx context.Context, id string) error {
	if !a.history.Select(id) {
		a.println("Analysis not found:", id)
		return nil
	}
	r := a.history.Selected()

	species := r.PlantSpeciesID
	if s, err := a.catalog.SpeciesByID(ctx, r.PlantSpeciesID); err == nil && s != nil {
		species = s.Name
	}
	disease, _ := a.catalog.DiseaseByID(ctx, r.DiseaseID)

	a.printf("Analysis:   %s\n", r.ID)
	a.printf("Created:    %s\n", r.CreatedAt.Local().Format(timeLayout))
	a.printf("Species:    %s\n", species)
	if disease != nil {
		a.printf("Disease:    %s\n", disease.Name)
		a.printf("Stage:      %d %s\n", r.DiseaseStage, disease.StageDescription(r.DiseaseStage))
	} else {
		a.printf("Disease:    %s\n", r.DiseaseID)
		a.printf("Stage:      %d\n", r.DiseaseStage)
	}
	a.printf("Severity:   %s\n", r.Severity)
	a.printf("Confidence: %.1f%%\n", r.ConfidenceScore)
	a.printf("Image:      %s\n", imageLabel(r.ImageURL))
	if r.Notes != "" {
		a.printf("Notes:      %s\n", r.Notes)
	}
	if r.TreatmentApplied != "" {
		a.printf("Treated:    %s\n", r.TreatmentApplied)
	}
	a.printTreatment(disease)
	return nil
}

func imageLabel(ref string) string {
	switch {
	case ref == "":
		return "none"
	case strings.HasPrefix(ref, "data:"):
		return "inline image"
	case apiv1.IsStorageRef(ref):
		return "stored image"
	default:
		return ref
	}
}

func (a *App) CloseDetail(context.Context) error {
	a.history.ClearSelection()
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	confirmed := false
	deleted, err := a.history.Delete(ctx, id, func(prompt string) bool {
		confirmed = Confirm(a.reader, prompt, a.out)
		return confirmed
	})
	if errors.Is(err, history.ErrStale) {
		return nil
	}
	if err != nil {
		return err
	}

	switch {
	case !confirmed:
		a.println("Cancelled")
	case deleted:
		a.println("Deleted", id)
	default:
		a.println("Nothing to delete:", id)
	}
	return nil
}
