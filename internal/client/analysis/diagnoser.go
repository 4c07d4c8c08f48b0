// Package analysis produces a diagnosis for a selected image and, when
// someone is signed in, stores it as an analysis record.
package analysis

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/dmitrijs2005/plantguard/internal/client/apperr"
	"github.com/dmitrijs2005/plantguard/internal/client/models"
	"github.com/dmitrijs2005/plantguard/internal/common"
)

const (
	MinConfidence = 85.0
	MaxConfidence = 100.0
)

type Diagnosis struct {
	Disease    *models.Disease
	Stage      int
	Severity   common.Severity
	Confidence float64
}

// Diagnoser classifies an image of the given species.
type Diagnoser interface {
	Diagnose(ctx context.Context, image, speciesID string) (*Diagnosis, error)
}

type diseaseSource interface {
	Diseases(ctx context.Context) ([]*models.Disease, error)
}

// RandomDiagnoser ignores the image and draws a disease, a stage and a
// confidence uniformly from the catalog. It stands in for a real model.
type RandomDiagnoser struct {
	src diseaseSource

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomDiagnoser uses rnd for every draw; nil seeds a fresh source.
func NewRandomDiagnoser(src diseaseSource, rnd *rand.Rand) *RandomDiagnoser {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomDiagnoser{src: src, rnd: rnd}
}

func (d *RandomDiagnoser) Diagnose(ctx context.Context, _, _ string) (*Diagnosis, error) {
	diseases, err := d.src.Diseases(ctx)
	if err != nil {
		return nil, apperr.DataUnavailable("Unable to load disease data", err)
	}
	if len(diseases) == 0 {
		return nil, apperr.DataUnavailable("No disease data available", nil)
	}

	d.mu.Lock()
	disease := diseases[d.rnd.IntN(len(diseases))]
	stage := common.MinDiseaseStage + d.rnd.IntN(common.MaxDiseaseStage-common.MinDiseaseStage+1)
	confidence := MinConfidence + d.rnd.Float64()*(MaxConfidence-MinConfidence)
	d.mu.Unlock()

	// Float64 close to 1 rounds up to MaxConfidence, which is exclusive.
	if confidence >= MaxConfidence {
		confidence = math.Nextafter(MaxConfidence, MinConfidence)
	}

	severity, _ := common.SeverityForStage(stage)

	return &Diagnosis{
		Disease:    disease,
		Stage:      stage,
		Severity:   severity,
		Confidence: confidence,
	}, nil
}
