package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("exercise validation failed")
	ErrUserNotFound     = errors.New("user not found")
)

type ExerciseService interface {
	CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	RandomExercise(ctx context.Context) (*domain.Exercise, error)
	// CompleteExercise records a completion and returns the user's new total.
	CompleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) (int, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, userRepo repository.UserRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

// CreateExercise adds an entry to the public catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	exercise.Name = strings.TrimSpace(exercise.Name)
	if exercise.Name == "" || !exercise.Type.Valid() || !exercise.Difficulty.Valid() {
		return nil, ErrValidationFailed
	}
	// A catalog entry is timed or counted, not both.
	if (exercise.Duration == nil) == (exercise.Reps == nil) {
		return nil, ErrValidationFailed
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

func (s *exerciseService) RandomExercise(ctx context.Context) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.Random(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrExerciseNotFound
	}
	return exercise, err
}

func (s *exerciseService) CompleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) (int, error) {
	if _, err := s.GetExerciseByID(ctx, exerciseID); err != nil {
		return 0, err
	}
	total, err := s.userRepo.IncrementExercisesCompleted(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrUserNotFound
	}
	return total, err
}
