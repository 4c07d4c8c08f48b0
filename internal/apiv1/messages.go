package apiv1

import (
	"encoding/json"
	"time"
)

type User struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Metadata  map[string]string `json:"user_metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type SignUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
}

type SignUpResponse struct {
	User *User `json:"user"`
	// ConfirmationPending is set when the account exists but no session was
	// issued, e.g. while an email confirmation is outstanding.
	ConfirmationPending bool `json:"confirmation_pending"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct{}

type GetUserRequest struct{}

type GetUserResponse struct {
	User *User `json:"user"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type PlantSpecies struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ScientificName string   `json:"scientific_name"`
	Description    string   `json:"description"`
	CommonDiseases []string `json:"common_diseases"`
}

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
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Stages      DiseaseStages   `json:"stages"`
	Treatment   []TreatmentStep `json:"treatment"`
}

type ListSpeciesRequest struct{}

type ListSpeciesResponse struct {
	Species []*PlantSpecies `json:"species"`
}

type ListDiseasesRequest struct{}

type ListDiseasesResponse struct {
	Diseases []*Disease `json:"diseases"`
}

// Analysis mirrors a row of the analyses table.
type Analysis struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	PlantSpeciesID   string          `json:"plant_species_id"`
	DiseaseID        string          `json:"disease_id"`
	DiseaseStage     int32           `json:"disease_stage"`
	Severity         string          `json:"severity"`
	ConfidenceScore  float64         `json:"confidence_score"`
	ImageURL         string          `json:"image_url"`
	SegmentationData json.RawMessage `json:"segmentation_data,omitempty"`
	TreatmentApplied *string         `json:"treatment_applied,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type InsertAnalysisRequest struct {
	Analysis *Analysis `json:"analysis"`
}

type InsertAnalysisResponse struct {
	Analysis *Analysis `json:"analysis"`
}

type ListAnalysesRequest struct {
	UserID string `json:"user_id"`
}

type ListAnalysesResponse struct {
	Analyses []*Analysis `json:"analyses"`
}

type DeleteAnalysisRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type DeleteAnalysisResponse struct {
	// Deleted is the number of rows removed: 0 or 1.
	Deleted int64 `json:"deleted"`
}

type RequestImageUploadRequest struct {
	ContentType string `json:"content_type"`
}

type RequestImageUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
