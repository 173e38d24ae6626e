package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"heybabyy/internal/models"
	"heybabyy/internal/repository"
	"heybabyy/internal/validation"
)

var (
	ErrChildNotFound = errors.New("child not found")
)

// ChildService handles child profile business logic
type ChildService struct {
	childRepo *repository.ChildRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository, logger *zap.Logger) *ChildService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildService{
		childRepo: childRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateChild validates and stores a new child profile
func (s *ChildService) CreateChild(name, sex, birthDate string) (*models.Child, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	parsedSex, err := validation.ValidateSex(sex)
	if err != nil {
		return nil, err
	}
	birth, err := validation.ValidateBirthDate(birthDate, s.now())
	if err != nil {
		return nil, err
	}

	child := &models.Child{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Sex:       parsedSex,
		BirthDate: birth,
	}
	if err := s.childRepo.CreateChild(child); err != nil {
		return nil, err
	}

	s.logger.Info("Child created", zap.String("child_id", child.ID), zap.String("sex", string(child.Sex)))
	return child, nil
}

// GetChild returns a child or ErrChildNotFound
func (s *ChildService) GetChild(id string) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(id)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, fmt.Errorf("%w: %s", ErrChildNotFound, id)
	}
	return child, nil
}

// ListChildren returns every child profile
func (s *ChildService) ListChildren() ([]models.Child, error) {
	return s.childRepo.ListChildren()
}

// DeleteChild removes a child and everything logged for them
func (s *ChildService) DeleteChild(id string) error {
	if _, err := s.GetChild(id); err != nil {
		return err
	}
	if err := s.childRepo.DeleteChild(id); err != nil {
		return err
	}
	s.logger.Info("Child deleted", zap.String("child_id", id))
	return nil
}

// logDate parses a day for a child's journal, rejecting days before birth
func logDate(child *models.Child, value string) (time.Time, error) {
	day, err := validation.ValidateDate("date", value)
	if err != nil {
		return time.Time{}, err
	}
	if day.Before(child.BirthDate) {
		return time.Time{}, validation.ValidationError{Field: "date", Message: "date cannot be before the birth date"}
	}
	return day, nil
}
