package logging

// Standardized attribute keys. Components attach FieldComponent once via
// NewComponentLogger; event keys keep log queries stable across packages.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
	FieldRunID     = "run_id"
	FieldSource    = "source_path"
	FieldDest      = "destination_path"
	FieldOutcome   = "outcome"
)
