// Command seed loads the initial literary corpus into an empty database,
// generating passage embeddings through the AI provider along the way.
package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"go.uber.org/zap"

	"moji-backend/domain/literature"
	"moji-backend/infrastructure/ai"
	"moji-backend/infrastructure/config"
	"moji-backend/infrastructure/persistence/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := sqlite.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	store := sqlite.NewLiteratureStore(db)
	gateway := ai.NewGateway(ai.NewClient(cfg.DashScopeAPIKey, cfg.DashScopeBaseURL, logger), logger)

	ctx := context.Background()

	count, err := store.CountPassages(ctx)
	if err != nil {
		logger.Fatal("Failed to count passages", zap.Error(err))
	}
	if count > 0 {
		logger.Info("corpus already seeded, nothing to do", zap.Int("passages", count))
		return
	}

	logger.Info("seeding literary corpus")

	authorIDs := make(map[string]int64, len(authorSeeds))
	for _, as := range authorSeeds {
		author := &literature.Author{
			Name:        as.Name,
			NameEn:      as.NameEn,
			Era:         as.Era,
			Nationality: as.Nationality,
			StyleTags:   as.StyleTags,
			Bio:         as.Bio,
			PlantType:   as.PlantType,
			PlantSymbol: as.PlantSymbol,
		}
		id, err := store.CreateAuthor(ctx, author)
		if err != nil {
			logger.Fatal("Failed to create author", zap.String("name", as.Name), zap.Error(err))
		}
		authorIDs[as.Name] = id
		logger.Info("author created", zap.String("name", as.Name), zap.String("plant", as.PlantType))
	}

	workIDs := make(map[string]int64, len(workSeeds))
	for _, ws := range workSeeds {
		authorID, ok := authorIDs[ws.AuthorName]
		if !ok {
			logger.Warn("unknown author for work", zap.String("author", ws.AuthorName))
			continue
		}
		work := &literature.Work{
			AuthorID: authorID,
			Title:    ws.Title,
			Type:     ws.Type,
			Era:      ws.Era,
		}
		id, err := store.CreateWork(ctx, work)
		if err != nil {
			logger.Fatal("Failed to create work", zap.String("title", ws.Title), zap.Error(err))
		}
		workIDs[ws.AuthorName+"-"+ws.Title] = id
	}

	created := 0
	for _, ps := range passageSeeds {
		authorID, ok := authorIDs[ps.AuthorName]
		if !ok {
			logger.Warn("unknown author for passage", zap.String("author", ps.AuthorName))
			continue
		}

		embedding, _ := json.Marshal(gateway.GenerateEmbedding(ctx, ps.Content))

		passage := &literature.Passage{
			AuthorID:    authorID,
			WorkID:      workIDs[ps.AuthorName+"-"+ps.WorkTitle],
			Content:     ps.Content,
			EmotionTags: ps.EmotionTags,
			ImageryTags: ps.ImageryTags,
			SceneTags:   ps.SceneTags,
			ThemeTags:   ps.ThemeTags,
			Embedding:   string(embedding),
		}
		if _, err := store.CreatePassage(ctx, passage); err != nil {
			logger.Fatal("Failed to create passage", zap.Error(err))
		}
		created++

		// Pace embedding calls to stay under the provider's rate limit.
		time.Sleep(200 * time.Millisecond)
	}

	logger.Info("corpus seeded",
		zap.Int("authors", len(authorIDs)),
		zap.Int("works", len(workIDs)),
		zap.Int("passages", created))
}
