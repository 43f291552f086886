package service

// Outcome labels shared by the auth flows.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

// AuthRecorder receives outcome counts from signup, signin and the session gate.
type AuthRecorder interface {
	RecordSignup(outcome string)
	RecordSignin(outcome string)
	RecordGateRejection(reason string)
}
