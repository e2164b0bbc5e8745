package analysis

const (
	TypeBug            = "bug"
	TypeFeatureRequest = "feature_request"
	TypeDocumentation  = "documentation"
	TypeQuestion       = "question"
	TypeOther          = "other"
)

// MaxSuggestedLabels caps the labels kept from a model response.
const MaxSuggestedLabels = 3

var allowedTypes = map[string]struct{}{
	TypeBug:            {},
	TypeFeatureRequest: {},
	TypeDocumentation:  {},
	TypeQuestion:       {},
	TypeOther:          {},
}

// AnalysisResult is the normalized triage summary for one issue.
type AnalysisResult struct {
	Summary         string   `json:"summary" yaml:"summary"`
	Type            string   `json:"type" yaml:"type"`
	PriorityScore   string   `json:"priority_score" yaml:"priority_score"`
	SuggestedLabels []string `json:"suggested_labels" yaml:"suggested_labels"`
	PotentialImpact string   `json:"potential_impact" yaml:"potential_impact"`
}
