package messaging

import "context"

// Service turns results and errors into text shown to the user
type Service interface {
	// GetFairnessMessage describes a fairness report
	GetFairnessMessage(ctx context.Context, input *GetFairnessMessageInput) (*GetFairnessMessageOutput, error)

	// GetStatusMessage returns the status line for a completed action
	GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
