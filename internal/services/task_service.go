package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "tasklist-web.com/tasklist-web/internal/errors"
	model "tasklist-web.com/tasklist-web/internal/models"
	repository "tasklist-web.com/tasklist-web/internal/repositories"
)

const dateLayout = "2006-01-02"

type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// CreateTask persists a new task. An empty date defaults to the server's
// current date at the moment of insertion.
func (s *TaskService) CreateTask(ctx context.Context, title, description, date string) (*model.Task, error) {
	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, title, description, parsed)
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

// UpdateTask overwrites all three task fields. There is no partial update
// and no conflict check between concurrent editors.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, title, description, date string) (*model.Task, error) {
	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        parsed,
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func parseDate(date string) (time.Time, error) {
	if date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate
	}

	return parsed, nil
}
