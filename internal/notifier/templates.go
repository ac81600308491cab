package notifier

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	subjectOTP                 = "Your Healthcare Portal OTP"
	subjectDoctorAssignment    = "New Appointment Request - Action Required"
	subjectPatientConfirmation = "Appointment Confirmed - Healthcare Portal"
	subjectEmergencyAlert      = "URGENT: Emergency Case Detected"
)

var (
	otpTmpl = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background: #f7f9fc; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden;">
    <div style="background: #0A6CF1; padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0;">Healthcare Portal Verification</h1>
    </div>
    <div style="padding: 32px;">
      <p>Hello,</p>
      <p>You are signing in as a <strong>{{.UserType}}</strong>. Please use the following OTP to complete your login:</p>
      <div style="border: 2px dashed #0A6CF1; border-radius: 12px; padding: 24px; text-align: center; margin: 24px 0;">
        <span style="font-size: 36px; font-weight: bold; color: #0A6CF1; letter-spacing: 8px; font-family: monospace;">{{.Code}}</span>
      </div>
      <p>This OTP is valid for <strong>10 minutes</strong>.</p>
      <p>If you didn't request this code, please ignore this email.</p>
    </div>
    <div style="background: #f7f9fc; padding: 16px; text-align: center; color: #999; font-size: 13px;">
      <p>This is an automated message. Please do not reply.</p>
    </div>
  </div>
</body>
</html>`))

	doctorAssignmentTmpl = template.Must(template.New("doctor_notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background: #f7f9fc; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden;">
    <div style="background: #0A6CF1; padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0;">New Appointment Request</h1>
    </div>
    <div style="padding: 32px;">
      <p>Dear Doctor,</p>
      <p>A new patient has requested an appointment with you. Please review the details below:</p>
      <div style="background: #f7f9fc; border-left: 4px solid #0A6CF1; padding: 16px; border-radius: 8px;">
        <p><strong>Patient:</strong> {{.PatientName}}</p>
        <p><strong>Contact:</strong> {{.PatientEmail}} | {{.PatientPhone}}</p>
        <p><strong>Symptoms:</strong> {{.Symptoms}}</p>
        <p><strong>Duration:</strong> {{.Duration}}</p>
        <p><strong>Severity:</strong> {{.SeverityLevel}} ({{.Severity}}/10)</p>
        {{if .Medications}}<p><strong>Medications/Allergies:</strong> {{.Medications}}</p>{{end}}
      </div>
      {{if .RedFlags}}
      <div style="background: #fff3e0; border-left: 4px solid #ff9800; padding: 12px; border-radius: 8px; margin: 16px 0; color: #e65100;">
        <strong>Warning Signs Reported:</strong> Patient has indicated emergency warning signs. Please prioritize this request.
      </div>
      {{end}}
      <p style="text-align: center; margin: 24px 0;">
        <a href="{{.ConfirmURL}}" style="display: inline-block; padding: 14px 28px; margin: 0 6px; border-radius: 8px; background: #4CAF50; color: white; text-decoration: none; font-weight: 600;">Confirm Appointment</a>
        <a href="{{.DeclineURL}}" style="display: inline-block; padding: 14px 28px; margin: 0 6px; border-radius: 8px; background: #f44336; color: white; text-decoration: none; font-weight: 600;">Decline Request</a>
      </p>
      <p style="color: #999; font-size: 13px;">Note: confirming will let you set the appointment date and time.</p>
    </div>
    <div style="background: #f7f9fc; padding: 16px; text-align: center; color: #999; font-size: 13px;">
      <p>Request ID: #{{.RequestID}}</p>
    </div>
  </div>
</body>
</html>`))

	patientConfirmationTmpl = template.Must(template.New("patient_confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background: #f7f9fc; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden;">
    <div style="background: #4CAF50; padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0;">Appointment Confirmed</h1>
    </div>
    <div style="padding: 32px;">
      <p>Dear {{.PatientName}},</p>
      <p>Your appointment has been successfully confirmed. Please find the details below:</p>
      <div style="background: #f7f9fc; border: 2px solid #0A6CF1; padding: 20px; border-radius: 12px;">
        <p><strong>Doctor:</strong> {{.DoctorName}}</p>
        <p><strong>Specialty:</strong> {{.Specialty}}</p>
        <p><strong>Hospital/Clinic:</strong> {{.Hospital}}</p>
        <p><strong>Location:</strong> {{.Location}}</p>
        <p><strong>Contact:</strong> {{.DoctorPhone}}</p>
      </div>
      <div style="background: #0A6CF1; color: white; padding: 16px; border-radius: 8px; text-align: center; margin: 16px 0;">
        <div style="font-size: 22px; font-weight: bold;">{{.Date}}</div>
        <div style="font-size: 18px; margin-top: 6px;">{{.Time}}</div>
      </div>
      <div style="background: #e8f5e9; border-left: 4px solid #4CAF50; padding: 12px; border-radius: 8px;">
        <strong>Important Notes:</strong>
        <ul style="margin: 8px 0; padding-left: 20px;">
          <li>Please arrive 10 minutes before your scheduled time</li>
          <li>Bring any relevant medical records or test results</li>
          <li>Carry a valid ID proof</li>
          <li>If you need to reschedule, please contact the clinic directly</li>
        </ul>
      </div>
    </div>
    <div style="background: #f7f9fc; padding: 16px; text-align: center; color: #999; font-size: 13px;">
      <p>Appointment ID: #{{.AppointmentID}}</p>
    </div>
  </div>
</body>
</html>`))

	emergencyAlertTmpl = template.Must(template.New("emergency").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background: #f7f9fc; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden; border: 3px solid #f44336;">
    <div style="background: #f44336; padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0;">EMERGENCY CASE ALERT</h1>
    </div>
    <div style="padding: 32px;">
      <div style="background: #ffebee; border: 2px solid #f44336; padding: 16px; border-radius: 8px;">
        <p style="color: #c62828; font-weight: bold; margin: 0 0 8px 0;">HIGH SEVERITY CASE DETECTED</p>
        <p style="color: #666; margin: 0;">Immediate medical attention may be required.</p>
      </div>
      <p><strong>Patient:</strong> {{.PatientName}}</p>
      <p><strong>Contact:</strong> {{.PatientEmail}} | {{.PatientPhone}}</p>
      <p><strong>Symptoms:</strong> {{.Symptoms}}</p>
      <p><strong>Severity:</strong> {{.Severity}}/10 - {{.SeverityLevel}}</p>
      <p style="color: #c62828; font-weight: bold; margin-top: 24px;">
        Automatic appointment scheduling has been paused. Admin intervention required.
      </p>
    </div>
  </div>
</body>
</html>`))
)

// render produces the subject and HTML body for one notification. The
// payload type must match the kind; anything else is a programming
// error surfaced as an error rather than a panic.
func render(kind Kind, payload interface{}) (subject, body string, err error) {
	var tmpl *template.Template

	switch kind {
	case KindOTP:
		subject, tmpl = subjectOTP, otpTmpl
		if _, ok := payload.(OTPMessage); !ok {
			return "", "", fmt.Errorf("kind %s requires OTPMessage payload, got %T", kind, payload)
		}
	case KindDoctorAssignment:
		subject, tmpl = subjectDoctorAssignment, doctorAssignmentTmpl
		if _, ok := payload.(DoctorAssignment); !ok {
			return "", "", fmt.Errorf("kind %s requires DoctorAssignment payload, got %T", kind, payload)
		}
	case KindPatientConfirmation:
		subject, tmpl = subjectPatientConfirmation, patientConfirmationTmpl
		if _, ok := payload.(PatientConfirmation); !ok {
			return "", "", fmt.Errorf("kind %s requires PatientConfirmation payload, got %T", kind, payload)
		}
	case KindEmergencyAlert:
		subject, tmpl = subjectEmergencyAlert, emergencyAlertTmpl
		if _, ok := payload.(EmergencyAlert); !ok {
			return "", "", fmt.Errorf("kind %s requires EmergencyAlert payload, got %T", kind, payload)
		}
	default:
		return "", "", fmt.Errorf("unknown notification kind: %s", kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return "", "", fmt.Errorf("failed to render %s template: %w", kind, err)
	}
	return subject, buf.String(), nil
}
