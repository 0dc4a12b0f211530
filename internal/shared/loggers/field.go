package loggers

const (
	FieldApp       = "app"
	FieldComponent = "component"

	FieldRunID     = "run_id"
	FieldCampusID  = "campus_id"
	FieldPage      = "page"
	FieldHost      = "host"
	FieldDuration  = "duration"
	FieldErrorCode = "error_code"

	FieldSessionCount = "session_count"
	FieldSkippedCount = "skipped_count"
)
