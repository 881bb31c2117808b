package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, carried on the context through a call chain.
const (
	FieldRequestID      = "request_id"
	FieldJobID          = "job_id"
	FieldProfessionalID = "professional_id"
	FieldMatchID        = "match_id"
	FieldRunID          = "run_id"
	FieldComponent      = "component"
)

// Metric fields, attached to a single entry for aggregation.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldCandidates = "candidates"
	FieldScore      = "score"
	FieldStatus     = "status"
)
