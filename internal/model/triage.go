package model

// SeverityLevel is the triage urgency classification, ordered from
// least to most urgent. The values are labels, not numbers.
type SeverityLevel string

const (
	SeverityLow       SeverityLevel = "LOW"
	SeverityMedium    SeverityLevel = "MEDIUM"
	SeverityHigh      SeverityLevel = "HIGH"
	SeverityEmergency SeverityLevel = "EMERGENCY"
)

func (s SeverityLevel) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityEmergency:
		return true
	}
	return false
}

type Specialty string

const (
	SpecialtyCardiologist       Specialty = "Cardiologist"
	SpecialtyDermatologist      Specialty = "Dermatologist"
	SpecialtyGastroenterologist Specialty = "Gastroenterologist"
	SpecialtyNeurologist        Specialty = "Neurologist"
	SpecialtyOrthopedic         Specialty = "Orthopedic"
	SpecialtyGeneralPhysician   Specialty = "General Physician"
)

func (s Specialty) Valid() bool {
	switch s {
	case SpecialtyCardiologist, SpecialtyDermatologist, SpecialtyGastroenterologist,
		SpecialtyNeurologist, SpecialtyOrthopedic, SpecialtyGeneralPhysician:
		return true
	}
	return false
}

// SymptomReport is the patient-submitted intake, immutable once stored.
type SymptomReport struct {
	Symptoms    string `json:"symptoms"`
	Duration    string `json:"duration"`
	Severity    int    `json:"severity"`
	RedFlags    bool   `json:"red_flags"`
	Medications string `json:"medications,omitempty"`
}

// ClassificationResult is the classifier's triage verdict. Analysis is
// guidance text for a human reader, never a diagnosis.
type ClassificationResult struct {
	SeverityLevel      SeverityLevel `json:"severity_level"`
	SuggestedSpecialty Specialty     `json:"suggested_specialty"`
	Analysis           string        `json:"analysis"`
}

// TriageOutcome describes what happened to a submitted request.
type TriageOutcome struct {
	RequestID int64                 `json:"request_id"`
	Emergency bool                  `json:"emergency"`
	Message   string                `json:"message"`
	Doctor    *AssignedDoctor       `json:"doctor,omitempty"`
	Analysis  *ClassificationResult `json:"analysis,omitempty"`
}

type AssignedDoctor struct {
	Name      string    `json:"name"`
	Specialty Specialty `json:"specialty"`
}
