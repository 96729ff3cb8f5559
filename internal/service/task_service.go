package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"Backoffice/internal/audit"
	"Backoffice/internal/cache"
	dom "Backoffice/internal/domain"
	"Backoffice/internal/repo"
	"Backoffice/internal/validation"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	audit *audit.Producer
	log   *slog.Logger
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled;
// if p is nil, no audit events are emitted.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache, p *audit.Producer, log *slog.Logger) *TaskService {
	return &TaskService{repo: r, cache: c, audit: p, log: log}
}

func (s *TaskService) Create(ctx context.Context, title, description string, completed bool) (dom.Task, error) {
	if errs := validation.Task(title); len(errs) > 0 {
		s.log.Warn("task create rejected", "fields", fieldNames(errs))
		return dom.Task{}, &ValidationError{Fields: errs}
	}
	t, err := s.repo.Create(ctx, dom.Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Completed:   completed,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	s.emitAudit(ctx, "created", t.ID)
	s.log.Info("task created", "id", t.ID, "title", t.Title)
	return t, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context) ([]dom.Task, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("task:list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.List(ctx)
}

// Update replaces title, description and completed with the submitted values.
func (s *TaskService) Update(ctx context.Context, id int64, title, description string, completed bool) (dom.Task, error) {
	if errs := validation.Task(title); len(errs) > 0 {
		s.log.Warn("task update rejected", "id", id, "fields", fieldNames(errs))
		return dom.Task{}, &ValidationError{Fields: errs}
	}
	t, err := s.repo.Update(ctx, id, dom.Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Completed:   completed,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	s.emitAudit(ctx, "updated", t.ID)
	s.log.Info("task updated", "id", t.ID, "title", t.Title)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx)
	s.emitAudit(ctx, "deleted", id)
	s.log.Info("task deleted", "id", id)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

func (s *TaskService) emitAudit(ctx context.Context, action string, id int64) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, "task", action, id); err != nil {
		s.log.Warn("audit emit failed", "action", action, "id", id, "err", err)
	}
}
