package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swasth/triage-api/internal/model"
)

func TestClassifySeverityThresholds(t *testing.T) {
	c := NewRuleClassifier()
	ctx := context.Background()

	tests := []struct {
		name     string
		report   model.SymptomReport
		expected model.SeverityLevel
	}{
		{"self rating 9 is emergency", model.SymptomReport{Symptoms: "fever", Severity: 9}, model.SeverityEmergency},
		{"self rating 10 is emergency", model.SymptomReport{Symptoms: "fever", Severity: 10}, model.SeverityEmergency},
		{"rating 8 with red flags is emergency", model.SymptomReport{Symptoms: "fever", Severity: 8, RedFlags: true}, model.SeverityEmergency},
		{"rating 8 without red flags is high", model.SymptomReport{Symptoms: "fever", Severity: 8}, model.SeverityHigh},
		{"rating 7 is high", model.SymptomReport{Symptoms: "fever", Severity: 7}, model.SeverityHigh},
		{"rating 6 with red flags is high", model.SymptomReport{Symptoms: "fever", Severity: 6, RedFlags: true}, model.SeverityHigh},
		{"rating 6 without red flags is medium", model.SymptomReport{Symptoms: "fever", Severity: 6}, model.SeverityMedium},
		{"rating 4 is medium", model.SymptomReport{Symptoms: "fever", Severity: 4}, model.SeverityMedium},
		{"rating 3 is low", model.SymptomReport{Symptoms: "fever", Severity: 3}, model.SeverityLow},
		{"rating 1 is low", model.SymptomReport{Symptoms: "fever", Severity: 1}, model.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(ctx, tt.report)
			assert.Equal(t, tt.expected, result.SeverityLevel)
		})
	}
}

func TestClassifyEmergencyKeywordOverridesRating(t *testing.T) {
	c := NewRuleClassifier()

	result := c.Classify(context.Background(), model.SymptomReport{
		Symptoms: "mild chest pain since morning",
		Duration: "1 day",
		Severity: 1,
	})

	assert.Equal(t, model.SeverityEmergency, result.SeverityLevel)
	assert.Equal(t, model.SpecialtyCardiologist, result.SuggestedSpecialty)
}

func TestClassifyEmergencyKeywordCaseInsensitive(t *testing.T) {
	c := NewRuleClassifier()

	for _, symptoms := range []string{"CHEST PAIN", "Chest Pain", "having Difficulty Breathing today"} {
		result := c.Classify(context.Background(), model.SymptomReport{Symptoms: symptoms, Severity: 2})
		assert.Equal(t, model.SeverityEmergency, result.SeverityLevel, "symptoms: %s", symptoms)
	}
}

func TestClassifySpecialtyDetection(t *testing.T) {
	tests := []struct {
		symptoms  string
		specialty model.Specialty
	}{
		{"heart palpitations at night", model.SpecialtyCardiologist},
		{"skin rash on my arm", model.SpecialtyDermatologist},
		{"constant nausea after meals", model.SpecialtyGastroenterologist},
		{"recurring migraine", model.SpecialtyNeurologist},
		{"knee pain when climbing stairs", model.SpecialtyOrthopedic},
		{"general tiredness", model.SpecialtyGeneralPhysician},
		{"", model.SpecialtyGeneralPhysician},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.specialty, detectSpecialty(tt.symptoms), "symptoms: %s", tt.symptoms)
	}
}

func TestClassifySpecialtyFirstMatchWins(t *testing.T) {
	// Cardiology rules come before neurology, so a report naming both
	// lands on the cardiologist.
	result := detectSpecialty("shortness of breath and headache")
	assert.Equal(t, model.SpecialtyCardiologist, result)
}

func TestClassifyMildCases(t *testing.T) {
	c := NewRuleClassifier()

	headache := c.Classify(context.Background(), model.SymptomReport{
		Symptoms: "mild headache",
		Duration: "2 days",
		Severity: 3,
	})
	assert.Equal(t, model.SeverityLow, headache.SeverityLevel)
	assert.Equal(t, model.SpecialtyNeurologist, headache.SuggestedSpecialty)

	rash := c.Classify(context.Background(), model.SymptomReport{
		Symptoms: "skin rash",
		Duration: "1 week",
		Severity: 2,
	})
	assert.Equal(t, model.SeverityLow, rash.SeverityLevel)
	assert.Equal(t, model.SpecialtyDermatologist, rash.SuggestedSpecialty)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewRuleClassifier()
	report := model.SymptomReport{
		Symptoms:    "stomach pain and vomiting",
		Duration:    "3 days",
		Severity:    5,
		Medications: "antacids",
	}

	first := c.Classify(context.Background(), report)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(context.Background(), report))
	}
}

func TestClassifyAnalysisMentionsReport(t *testing.T) {
	c := NewRuleClassifier()

	result := c.Classify(context.Background(), model.SymptomReport{
		Symptoms: "joint pain",
		Duration: "2 weeks",
		Severity: 5,
	})

	assert.Contains(t, result.Analysis, "joint pain")
	assert.Contains(t, result.Analysis, "2 weeks")
	assert.Equal(t, model.SeverityMedium, result.SeverityLevel)
}
