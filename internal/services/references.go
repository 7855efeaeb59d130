package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/repository"
)

// Reference checks run before any insert or update so a dangling foreign
// key is reported as a client error and nothing is written.

func ensureUser(ctx context.Context, users repository.UserRepository, id uint64, missing error) error {
	if _, err := users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return missing
		}
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

func ensureUsers(ctx context.Context, users repository.UserRepository, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := users.CountByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(ids) {
		return ErrMembersNotFound
	}
	return nil
}

func ensureProject(ctx context.Context, projects repository.ProjectRepository, id uint64) error {
	exists, err := projects.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to verify project: %w", err)
	}
	if !exists {
		return ErrProjectReferenceNotFound
	}
	return nil
}

func findTaskReference(ctx context.Context, tasks repository.TaskRepository, id uint64) (*models.Task, error) {
	task, err := tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTaskReferenceNotFound, "verify task")
	}
	return task, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
