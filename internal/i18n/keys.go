// internal/i18n/keys.go
package i18n

const (
	KeyAuthRequired      = "auth.required"
	KeyAuthInvalidToken  = "auth.invalid_token"
	KeyAuthTokenExpired  = "auth.token_expired"
	KeyAdminAccessDenied = "admin.access_denied"

	KeyValidationInvalid = "validation.invalid"

	KeyProjectNotFound        = "project.not_found"
	KeyProjectSubmitted       = "project.submitted"
	KeyProjectStatusUpdated   = "project.status_updated"
	KeyProjectBlocked         = "project.blocked"
	KeyProjectUnblocked       = "project.unblocked"
	KeyProjectRemoved         = "project.removed"
	KeyProjectExtended        = "project.extended"
	KeyRestorationRequested   = "restoration.requested"
	KeyRestorationApproved    = "restoration.approved"
	KeyRestorationRejected    = "restoration.rejected"
	KeyRestorationNotFound    = "restoration.not_found"
	KeyContactReceived        = "contact.received"
	KeyStatusCheckRecorded    = "status_check.recorded"
	KeySweepCompleted         = "sweep.completed"
)
