package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/pkg/metrics"
)

// Completer is the narrow contract with the generative model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Enabled() bool
}

// ModelClassifier asks a generative model for the classification and
// falls back to the rule strategy on any transport or parse failure,
// or when the reply strays outside the severity/specialty enums. The
// caller can never observe an error.
type ModelClassifier struct {
	completer Completer
	fallback  *RuleClassifier
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewModelClassifier(completer Completer, fallback *RuleClassifier, m *metrics.Metrics, logger zerolog.Logger) *ModelClassifier {
	return &ModelClassifier{
		completer: completer,
		fallback:  fallback,
		metrics:   m,
		logger:    logger,
	}
}

// Enabled reports whether the model strategy is active.
func (c *ModelClassifier) Enabled() bool {
	return c.completer != nil && c.completer.Enabled()
}

func (c *ModelClassifier) Classify(ctx context.Context, report model.SymptomReport) model.ClassificationResult {
	if !c.Enabled() {
		result := c.fallback.Classify(ctx, report)
		c.count(result.SeverityLevel, "rules")
		return result
	}

	result, err := c.classifyWithModel(ctx, report)
	if err != nil {
		c.logger.Warn().Err(err).Msg("model classification failed, using rule-based fallback")
		if c.metrics != nil {
			c.metrics.ClassifierFallback.Inc()
		}
		result = c.fallback.Classify(ctx, report)
		c.count(result.SeverityLevel, "rules")
		return result
	}

	c.count(result.SeverityLevel, "model")
	return result
}

func (c *ModelClassifier) count(severity model.SeverityLevel, strategy string) {
	if c.metrics != nil {
		c.metrics.Classifications.WithLabelValues(string(severity), strategy).Inc()
	}
}

type modelReply struct {
	SeverityLevel      model.SeverityLevel `json:"severityLevel"`
	SuggestedSpecialty model.Specialty     `json:"suggestedSpecialty"`
	Analysis           string              `json:"analysis"`
}

func (c *ModelClassifier) classifyWithModel(ctx context.Context, report model.SymptomReport) (model.ClassificationResult, error) {
	reply, err := c.completer.Complete(ctx, buildPrompt(report))
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("completion failed: %w", err)
	}

	parsed, err := parseReply(reply)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("unusable reply: %w", err)
	}
	return parsed, nil
}

// parseReply extracts the JSON object from the reply and rejects any
// value outside the fixed severity and specialty sets.
func parseReply(reply string) (model.ClassificationResult, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return model.ClassificationResult{}, fmt.Errorf("no JSON object in reply")
	}

	var parsed modelReply
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("failed to parse reply: %w", err)
	}

	if !parsed.SeverityLevel.Valid() {
		return model.ClassificationResult{}, fmt.Errorf("severity %q outside allowed set", parsed.SeverityLevel)
	}
	if !parsed.SuggestedSpecialty.Valid() {
		return model.ClassificationResult{}, fmt.Errorf("specialty %q outside allowed set", parsed.SuggestedSpecialty)
	}

	return model.ClassificationResult{
		SeverityLevel:      parsed.SeverityLevel,
		SuggestedSpecialty: parsed.SuggestedSpecialty,
		Analysis:           parsed.Analysis,
	}, nil
}

func buildPrompt(report model.SymptomReport) string {
	redFlags := "No"
	if report.RedFlags {
		redFlags = "Yes"
	}
	medications := report.Medications
	if medications == "" {
		medications = "None"
	}

	return fmt.Sprintf(`You are a medical triage assistant. Analyze the following patient information and provide a structured assessment.

Patient Information:
- Symptoms: %s
- Duration: %s
- Severity (1-10): %d
- Emergency Warning Signs: %s
- Current Medications/Allergies: %s

Please provide:
1. Severity Level: EMERGENCY, HIGH, MEDIUM, or LOW
2. Suggested Medical Specialty (e.g. Cardiologist, Dermatologist, Gastroenterologist, Neurologist, Orthopedic, General Physician)
3. Brief Analysis: A 2-3 sentence assessment (no diagnosis, just triage guidance)

IMPORTANT:
- Do NOT provide any medical diagnosis
- Do NOT recommend specific treatments
- Only suggest severity and appropriate specialty for triage purposes
- If symptoms suggest emergency, always mark as EMERGENCY

Format your response as JSON:
{
  "severityLevel": "HIGH",
  "suggestedSpecialty": "Cardiologist",
  "analysis": "Patient presents with concerning cardiac symptoms..."
}`,
		report.Symptoms, report.Duration, report.Severity, redFlags, medications)
}
