package common

// Severity is the coarse criticality label attached to a diagnosis.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

const (
	MinDiseaseStage = 1
	MaxDiseaseStage = 4
)

var stageSeverity = [...]Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// SeverityForStage maps a disease stage to its severity. Stages outside
// 1..4 report false.
func SeverityForStage(stage int) (Severity, bool) {
	if stage < MinDiseaseStage || stage > MaxDiseaseStage {
		return "", false
	}
	return stageSeverity[stage-1], true
}
