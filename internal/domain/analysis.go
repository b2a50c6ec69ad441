package domain

// ClaimAnalysis is the parsed LLM output for a single claim. It lives for one
// request: it is consumed to populate HealthClaim/ClaimVerification rows and
// then discarded.
type ClaimAnalysis struct {
	TruthScore         int      `json:"truthScore"`
	Category           string   `json:"category"`
	Risks              []string `json:"risks"`
	VerificationSteps  []string `json:"verificationSteps"`
	RequiredReferences []string `json:"requiredReferences"`
	Analysis           string   `json:"analysis"`
}

// InfluencerAnalysis is the parsed LLM output for a batch of influencer posts.
type InfluencerAnalysis struct {
	EvidenceBasedScore int      `json:"evidenceBasedScore"`
	MainTopics         []string `json:"mainTopics"`
	RiskLevel          string   `json:"riskLevel"`
	Recommendations    []string `json:"recommendations"`
	Analysis           string   `json:"analysis"`
}

// ExtractedClaim is one claim segmented out of raw influencer content.
type ExtractedClaim struct {
	Text    string `json:"text"`
	Context string `json:"context"`
	URL     string `json:"url,omitempty"`
}

// ClaimVerdict is the verification oracle's judgment on one claim text.
type ClaimVerdict struct {
	Status          string  `json:"status"`
	ConfidenceScore float64 `json:"confidence_score"`
	Explanation     string  `json:"explanation"`
}
