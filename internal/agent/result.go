package agent

// Pattern is the detected thought loop.
type Pattern string

const (
	Comparison       Pattern = "comparison"
	FutureProjection Pattern = "future_projection"
	Perfectionism    Pattern = "perfectionism"
	UncertaintyLoop  Pattern = "uncertainty_loop"
	IdentityThreat   Pattern = "identity_threat"
	Other            Pattern = "other"
)

// Patterns lists every pattern in display order.
var Patterns = []Pattern{Comparison, FutureProjection, Perfectionism, UncertaintyLoop, IdentityThreat, Other}

// Valid reports whether p is one of Patterns.
func (p Pattern) Valid() bool {
	for _, v := range Patterns {
		if p == v {
			return true
		}
	}
	return false
}

// Action is the single next step suggested for a loop.
type Action struct {
	Task             string  `json:"task"`
	TimeboxMin       float64 `json:"timebox_min"`
	DefinitionOfDone string  `json:"definition_of_done"`
}

// Result is a schema-checked analysis.
type Result struct {
	Pattern          Pattern  `json:"pattern"`
	Name             string   `json:"name"`
	Language         string   `json:"language,omitempty"`
	Evidence         []string `json:"evidence"`
	OneAction        Action   `json:"one_action"`
	Reframe          string   `json:"reframe"`
	FollowupQuestion string   `json:"followup_question"`
	Tags             []string `json:"tags,omitempty"`
	Confidence       float64  `json:"confidence"`
	Meta             *Meta    `json:"meta,omitempty"`
}

// Meta describes how the service produced a result.
type Meta struct {
	Mode           string   `json:"mode"` // "live", "mock" or "mock_fallback"
	Provider       string   `json:"provider,omitempty"`
	BaseURL        string   `json:"base_url,omitempty"`
	Model          string   `json:"model,omitempty"`
	Timestamp      string   `json:"timestamp,omitempty"`
	FallbackReason string   `json:"fallback_reason,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// Memory is a past entry sent along as context.
type Memory struct {
	TS        string  `json:"ts"`
	Summary   string  `json:"summary"`
	Pattern   string  `json:"pattern"`
	OneAction *Action `json:"one_action"`
	Score     float64 `json:"score,omitempty"`
}

// Request is one analysis call.
type Request struct {
	Text     string   `json:"current_text"`
	Memories []Memory `json:"top_memories"`
	Language string   `json:"language"`
	Strict   bool     `json:"strict"`
}
