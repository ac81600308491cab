package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/swasth/triage-api/internal/model"
)

// Classifier turns a symptom report into a triage classification. It
// never fails: implementations must resolve internal errors themselves.
type Classifier interface {
	Classify(ctx context.Context, report model.SymptomReport) model.ClassificationResult
}

// emergencyKeywords force EMERGENCY regardless of the self-rating.
var emergencyKeywords = []string{
	"chest pain",
	"difficulty breathing",
	"unconscious",
	"severe bleeding",
	"stroke",
	"heart attack",
	"severe burn",
	"poisoning",
	"suicide",
	"severe head injury",
	"can't breathe",
	"choking",
}

type specialtyRule struct {
	keyword   string
	specialty model.Specialty
}

// specialtyRules is scanned in declaration order; the first keyword
// found in the symptom text wins. Order is a deliberate tie-break.
var specialtyRules = []specialtyRule{
	// Cardiology
	{"chest pain", model.SpecialtyCardiologist},
	{"heart palpitations", model.SpecialtyCardiologist},
	{"shortness of breath", model.SpecialtyCardiologist},
	{"irregular heartbeat", model.SpecialtyCardiologist},
	{"high blood pressure", model.SpecialtyCardiologist},

	// Dermatology
	{"skin rash", model.SpecialtyDermatologist},
	{"acne", model.SpecialtyDermatologist},
	{"skin lesion", model.SpecialtyDermatologist},
	{"itching", model.SpecialtyDermatologist},
	{"hair loss", model.SpecialtyDermatologist},
	{"eczema", model.SpecialtyDermatologist},

	// Gastroenterology
	{"stomach pain", model.SpecialtyGastroenterologist},
	{"abdominal pain", model.SpecialtyGastroenterologist},
	{"nausea", model.SpecialtyGastroenterologist},
	{"vomiting", model.SpecialtyGastroenterologist},
	{"diarrhea", model.SpecialtyGastroenterologist},
	{"constipation", model.SpecialtyGastroenterologist},
	{"acid reflux", model.SpecialtyGastroenterologist},

	// Neurology
	{"headache", model.SpecialtyNeurologist},
	{"migraine", model.SpecialtyNeurologist},
	{"dizziness", model.SpecialtyNeurologist},
	{"seizure", model.SpecialtyNeurologist},
	{"numbness", model.SpecialtyNeurologist},
	{"tingling", model.SpecialtyNeurologist},
	{"memory loss", model.SpecialtyNeurologist},

	// Orthopedics
	{"joint pain", model.SpecialtyOrthopedic},
	{"back pain", model.SpecialtyOrthopedic},
	{"knee pain", model.SpecialtyOrthopedic},
	{"fracture", model.SpecialtyOrthopedic},
	{"sprain", model.SpecialtyOrthopedic},
	{"arthritis", model.SpecialtyOrthopedic},
}

// RuleClassifier is the deterministic keyword/threshold strategy. It
// is a pure function of the report and the final fallback for every
// other strategy.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

func (c *RuleClassifier) Classify(_ context.Context, report model.SymptomReport) model.ClassificationResult {
	severity := assessSeverity(report)
	specialty := detectSpecialty(report.Symptoms)

	return model.ClassificationResult{
		SeverityLevel:      severity,
		SuggestedSpecialty: specialty,
		Analysis:           buildAnalysis(report, severity),
	}
}

// assessSeverity applies the threshold rules in strict precedence;
// the first match wins.
func assessSeverity(report model.SymptomReport) model.SeverityLevel {
	symptoms := strings.ToLower(report.Symptoms)

	hasEmergencyKeyword := false
	for _, kw := range emergencyKeywords {
		if strings.Contains(symptoms, kw) {
			hasEmergencyKeyword = true
			break
		}
	}

	switch {
	case report.Severity >= 9, report.Severity >= 8 && report.RedFlags, hasEmergencyKeyword:
		return model.SeverityEmergency
	case report.Severity >= 7, report.Severity >= 6 && report.RedFlags:
		return model.SeverityHigh
	case report.Severity >= 4:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func detectSpecialty(symptoms string) model.Specialty {
	lower := strings.ToLower(symptoms)
	for _, rule := range specialtyRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.specialty
		}
	}
	return model.SpecialtyGeneralPhysician
}

func buildAnalysis(report model.SymptomReport, severity model.SeverityLevel) string {
	analysis := fmt.Sprintf("Patient reports %s for %s. ", report.Symptoms, report.Duration)

	switch severity {
	case model.SeverityEmergency:
		analysis += "This case requires immediate medical attention. Emergency protocols should be activated."
	case model.SeverityHigh:
		analysis += "This case shows concerning symptoms and should be prioritized for prompt medical evaluation."
	case model.SeverityMedium:
		analysis += "Patient should be scheduled for medical consultation within a reasonable timeframe."
	default:
		analysis += "Routine medical consultation is appropriate for this case."
	}
	return analysis
}
