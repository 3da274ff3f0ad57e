package logging

// Standardized structured logging keys.
const (
	FieldComponent     = "component"
	FieldProject       = "project"
	FieldStage         = "stage"
	FieldCorrelationID = "correlation_id"
	FieldEventType     = "event_type"
	FieldErrorHint     = "error_hint"
	FieldErrorKind     = "error_kind"
	FieldImpact        = "impact"
)
