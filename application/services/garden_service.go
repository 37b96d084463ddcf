package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"moji-backend/application/ports"
	"moji-backend/domain/garden"
	apperrors "moji-backend/pkg/errors"
)

// GardenService manages the per-user author collection and its growth rule.
type GardenService struct {
	repo   ports.GardenRepository
	logger *zap.Logger
}

func NewGardenService(repo ports.GardenRepository, logger *zap.Logger) *GardenService {
	return &GardenService{repo: repo, logger: logger}
}

// GetUserGarden returns the user's plants ordered by match count, most
// matched first.
func (s *GardenService) GetUserGarden(ctx context.Context, userID int64) ([]*garden.Plant, error) {
	plants, err := s.repo.ListPlants(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plants == nil {
		plants = []*garden.Plant{}
	}
	return plants, nil
}

// RecordMatch registers one more match between a user and an author. A first
// match plants a new stage-1 seed; later matches increment the count and
// restage. Stages never move backwards because match counts only grow.
func (s *GardenService) RecordMatch(ctx context.Context, userID, authorID int64) (*garden.Update, error) {
	now := time.Now()

	plant, err := s.repo.GetPlant(ctx, userID, authorID)
	switch {
	case err == nil:
		previousStage := plant.PlantStage
		plant.MatchCount++
		plant.PlantStage = garden.StageForCount(plant.MatchCount)
		plant.LastMatchAt = now
		if err := s.repo.UpdatePlant(ctx, plant); err != nil {
			return nil, err
		}
		return &garden.Update{
			AuthorID:      authorID,
			AuthorName:    plant.AuthorName,
			PlantType:     plant.PlantType,
			PreviousStage: previousStage,
			CurrentStage:  plant.PlantStage,
			IsNewPlant:    false,
		}, nil

	case apperrors.IsNotFound(err):
		plant = &garden.Plant{
			UserID:      userID,
			AuthorID:    authorID,
			PlantStage:  garden.MinStage,
			MatchCount:  1,
			LastMatchAt: now,
		}
		if _, err := s.repo.CreatePlant(ctx, plant); err != nil {
			// A concurrent submission planted first; fall through to the
			// increment path.
			if apperrors.IsConflict(err) {
				return s.RecordMatch(ctx, userID, authorID)
			}
			return nil, err
		}
		s.logger.Info("new plant created",
			zap.Int64("userId", userID),
			zap.Int64("authorId", authorID))
		return &garden.Update{
			AuthorID:      authorID,
			PreviousStage: garden.MinStage,
			CurrentStage:  garden.MinStage,
			IsNewPlant:    true,
		}, nil

	default:
		return nil, err
	}
}

// CollectedAuthors returns how many distinct authors the user has planted.
func (s *GardenService) CollectedAuthors(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountPlants(ctx, userID)
}
