package domain

// Step is one stage of the fixed profile-completion sequence.
type Step string

const (
	StepIdentity    Step = "identity"
	StepPersonal    Step = "personal"
	StepPreferences Step = "preferences"
	StepSubmission  Step = "submission"
	StepDashboard   Step = "dashboard"
)

// Status is the admin-controlled moderation state, independent of the step.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusDisapproved Status = "disapproved"
)

// ResetScope selects which stage a reset rolls back to.
type ResetScope string

const (
	ResetFull     ResetScope = "full"
	ResetIdentity ResetScope = "identity"
	ResetPersonal ResetScope = "personal"
)

func (s Step) Valid() bool {
	switch s {
	case StepIdentity, StepPersonal, StepPreferences, StepSubmission, StepDashboard:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDisapproved:
		return true
	}
	return false
}

// NextStep returns the step that follows a completed step. Submission and
// dashboard have no successor; completing preferences also marks the
// profile complete (handled by the caller).
func NextStep(completed Step) Step {
	switch completed {
	case StepIdentity:
		return StepPersonal
	case StepPersonal:
		return StepPreferences
	case StepPreferences:
		return StepSubmission
	default:
		return completed
	}
}

// RouteFor maps (current_step, status) to the single page the client must
// be shown. Approved users always land on the dashboard, disapproved users
// on the submission review screen; otherwise the step routes verbatim with
// unknown or empty steps falling back to identity.
func RouteFor(step Step, status Status) Step {
	if status == StatusApproved {
		return StepDashboard
	}
	if status == StatusDisapproved {
		return StepSubmission
	}
	switch step {
	case StepIdentity, StepPersonal, StepPreferences, StepSubmission:
		return step
	default:
		return StepIdentity
	}
}
