package models

type PlantSpecies struct {
	ID             string
	Name           string
	ScientificName string
	Description    string
	CommonDiseases []string
}

// DiseaseStages holds the description of each of the four stages.
type DiseaseStages struct {
	Stage1 string `json:"stage1"`
	Stage2 string `json:"stage2"`
	Stage3 string `json:"stage3"`
	Stage4 string `json:"stage4"`
}

type TreatmentStep struct {
	Step   int    `json:"step"`
	Action string `json:"action"`
}

type Disease struct {
	ID          string
	Name        string
	Description string
	Stages      DiseaseStages
	Treatment   []TreatmentStep
}
