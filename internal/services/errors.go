package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
)

var (
	ErrInvalidCredentials = apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, "Invalid credentials")
	ErrEmailTaken         = apierrors.NewAPIError(apierrors.ErrCodeConflict, "User with this email already exists")
	ErrAccessDenied       = apierrors.NewAPIError(apierrors.ErrCodeForbidden, "Access denied")
	ErrCannotDeleteSelf   = apierrors.NewAPIError(apierrors.ErrCodeForbidden, "You cannot delete your own account")
	ErrUserInUse          = apierrors.NewAPIError(apierrors.ErrCodeConflict, "User still owns tasks, projects or tickets")
	ErrNotAssigned        = apierrors.NewAPIError(apierrors.ErrCodeNotAssigned, "You can only log work on tasks assigned to you")

	ErrUserNotFound    = apierrors.NewAPIError(apierrors.ErrCodeNotFound, "User not found")
	ErrProjectNotFound = apierrors.NewAPIError(apierrors.ErrCodeNotFound, "Project not found")
	ErrTaskNotFound    = apierrors.NewAPIError(apierrors.ErrCodeNotFound, "Task not found")
	ErrTicketNotFound  = apierrors.NewAPIError(apierrors.ErrCodeNotFound, "Ticket not found")
	ErrLogworkNotFound = apierrors.NewAPIError(apierrors.ErrCodeNotFound, "Logwork not found")

	// Dangling foreign keys in request input.
	ErrAssigneeNotFound         = apierrors.NewAPIError(apierrors.ErrCodeReferenceNotFound, "Assigned user not found")
	ErrApproverNotFound         = apierrors.NewAPIError(apierrors.ErrCodeReferenceNotFound, "Approving user not found")
	ErrCreatorNotFound          = apierrors.NewAPIError(apierrors.ErrCodeReferenceNotFound, "Creating user not found")
	ErrMembersNotFound          = apierrors.NewAPIError(apierrors.ErrCodeReferenceNotFound, "One or more assigned users not found")
	ErrProjectReferenceNotFound = apierrors.NewAPIError(apierrors.ErrCodeReferenceNotFound, "Project not found")
	ErrTaskReferenceNotFound    = apierrors.NewAPIError(apierrors.ErrCodeReferenceNotFound, "Task not found")

	ErrAIServiceNotConfigured = apierrors.NewAPIError(apierrors.ErrCodeServiceUnavailable, "AI service is not configured")
	ErrAIServiceUnavailable   = apierrors.NewAPIError(apierrors.ErrCodeServiceUnavailable, "AI service is temporarily unavailable")
	ErrAINoTasksGenerated     = apierrors.NewAPIError(apierrors.ErrCodeValidationFailed, "AI did not generate any tasks")
)

// notFound maps gorm.ErrRecordNotFound to sentinel and wraps anything else.
func notFound(err error, sentinel *apierrors.APIError, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
