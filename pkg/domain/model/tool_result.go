package model

// ToolErrorKind classifies a failed invocation
type ToolErrorKind string

const (
	ToolErrorValidation ToolErrorKind = "validation"
	ToolErrorOperation  ToolErrorKind = "operation"
)

type ToolError struct {
	Kind    ToolErrorKind
	Message string
	Fields  FieldViolations
}

// ToolResult is the uniform envelope for one invocation. Exactly one of Data
// and Error is set.
type ToolResult struct {
	Success bool
	Data    ToolOutput
	Error   *ToolError
}

func NewToolSuccess(data ToolOutput) *ToolResult {
	return &ToolResult{Success: true, Data: data}
}

func NewToolValidationFailure(violations FieldViolations) *ToolResult {
	return &ToolResult{
		Error: &ToolError{
			Kind:    ToolErrorValidation,
			Message: "invalid input",
			Fields:  violations,
		},
	}
}

func NewToolOperationFailure(message string) *ToolResult {
	return &ToolResult{
		Error: &ToolError{
			Kind:    ToolErrorOperation,
			Message: message,
		},
	}
}
