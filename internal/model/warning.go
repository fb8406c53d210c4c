package model

// WarningKind classifies non-fatal problems recorded during extraction.
type WarningKind string

const (
	// WarnUnknownLabel is recorded when the model emits a label that is
	// not part of the task's taxonomy. The annotation is dropped.
	WarnUnknownLabel WarningKind = "unknown_label"

	// WarnResponseParse is recorded when part or all of the model output
	// cannot be parsed into annotations.
	WarnResponseParse WarningKind = "response_parse"

	// WarnModelFailure is recorded when the model call itself fails or
	// times out. The document proceeds with zero annotations.
	WarnModelFailure WarningKind = "model_failure"
)

// Warning is a recorded, non-fatal extraction problem. Warnings never halt
// the batch; they travel with the document for diagnostics.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}
