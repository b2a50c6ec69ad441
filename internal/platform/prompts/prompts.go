package prompts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a system instruction plus a user-message template. The user
// template must contain exactly one %s placeholder for the request content.
type Template struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// Config holds the prompt templates for every gateway operation. Templates
// may be overridden from a YAML file; anything left empty falls back to the
// built-in default.
type Config struct {
	ClaimAnalysis      Template `yaml:"claim_analysis"`
	InfluencerAnalysis Template `yaml:"influencer_analysis"`
	ClaimExtraction    Template `yaml:"claim_extraction"`
	ClaimVerification  Template `yaml:"claim_verification"`
}

func Default() *Config {
	return &Config{
		ClaimAnalysis: Template{
			System: "You are an expert health claim verifier. Your job is to analyze claims and judge their veracity against scientific evidence. You always respond with valid JSON.",
			User: `Analyze the following health claim and provide a detailed assessment.

Claim: "%s"

Respond with JSON in exactly this shape:
{
    "truthScore": number (0-100),
    "category": string (e.g. "Nutrition", "Exercise", "Wellness"),
    "risks": string[],
    "verificationSteps": string[],
    "requiredReferences": string[],
    "analysis": string
}`,
		},
		InfluencerAnalysis: Template{
			System: "You are an expert in social-media health content analysis. Your job is to evaluate the quality and veracity of content shared by influencers. You always respond with valid JSON.",
			User: `Analyze the following posts from a health influencer and provide a detailed assessment.

Posts: %s

Respond with JSON in exactly this shape:
{
    "evidenceBasedScore": number (0-100),
    "mainTopics": string[],
    "riskLevel": string ("low", "medium", "high"),
    "recommendations": string[],
    "analysis": string
}`,
		},
		ClaimExtraction: Template{
			System: "You are an expert at identifying health claims in social media content. You always respond with valid JSON.",
			User: `Extract health claims from this content. For each claim, provide:
1. The claim text
2. The context it appears in
3. Any relevant URLs or references mentioned

Respond with a JSON object holding a "claims" array of {"text", "context", "url"} objects.

Content: "%s"`,
		},
		ClaimVerification: Template{
			System: "You are a health claim verification expert. Analyze claims based on current scientific evidence. You always respond with valid JSON.",
			User: `Analyze this health claim and determine if it is scientifically accurate:
Claim: "%s"

Respond with a JSON object holding:
"status" (verified/false/misleading/unverified),
"confidence_score" (0-1),
"explanation" (brief).`,
		},
	}
}

// Load reads template overrides from path, merged over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}

	merge(&cfg.ClaimAnalysis, override.ClaimAnalysis)
	merge(&cfg.InfluencerAnalysis, override.InfluencerAnalysis)
	merge(&cfg.ClaimExtraction, override.ClaimExtraction)
	merge(&cfg.ClaimVerification, override.ClaimVerification)
	return cfg, nil
}

func merge(dst *Template, src Template) {
	if strings.TrimSpace(src.System) != "" {
		dst.System = src.System
	}
	if strings.TrimSpace(src.User) != "" {
		dst.User = src.User
	}
}

// Render fills the user template with the given content, verbatim.
func (t Template) Render(content string) string {
	return fmt.Sprintf(t.User, content)
}
