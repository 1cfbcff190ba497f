// Command seed loads a JSON catalog file into the configured store.
//
// The file holds the datasets and the links between them:
//
//	{
//	  "datasets": [{"title": "...", "category": "...", "url": "...", "description": "...", "tags": ["..."]}],
//	  "links": [{"source": "<title>", "target": "<title>"}]
//	}
//
// Links reference datasets by title so seed files stay readable; the
// command resolves them to generated IDs while loading.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"datacloud/domain/catalog"
	"datacloud/infrastructure/config"
	"datacloud/infrastructure/di"
)

type seedFile struct {
	Datasets []struct {
		Title       string   `json:"title"`
		Category    string   `json:"category"`
		URL         string   `json:"url"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	} `json:"datasets"`
	Links []struct {
		Source string `json:"source"`
		Target string `json:"target"`
	} `json:"links"`
}

func main() {
	file := flag.String("file", "seed.json", "path to the seed file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("could not read seed file", zap.String("file", *file), zap.Error(err))
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		logger.Fatal("could not parse seed file", zap.String("file", *file), zap.Error(err))
	}

	ids := make(map[string]string, len(seed.Datasets))
	for _, d := range seed.Datasets {
		category, ok := catalog.ParseCategory(d.Category)
		if !ok {
			logger.Fatal("unknown category", zap.String("title", d.Title), zap.String("category", d.Category))
		}
		entry, err := catalog.NewEntry(d.Title, category, d.URL, d.Description, d.Tags)
		if err != nil {
			logger.Fatal("invalid dataset", zap.String("title", d.Title), zap.Error(err))
		}
		if err := container.EntryRepo.Save(ctx, entry); err != nil {
			logger.Fatal("could not save dataset", zap.String("title", d.Title), zap.Error(err))
		}
		ids[d.Title] = entry.ID
	}

	linked := 0
	for _, l := range seed.Links {
		source, ok := ids[l.Source]
		if !ok {
			logger.Warn("link source not in seed file", zap.String("source", l.Source))
			continue
		}
		target, ok := ids[l.Target]
		if !ok {
			logger.Warn("link target not in seed file", zap.String("target", l.Target))
			continue
		}
		if err := container.EntryRepo.SaveLink(ctx, catalog.Link{Source: source, Target: target}); err != nil {
			logger.Fatal("could not save link", zap.String("source", l.Source), zap.String("target", l.Target), zap.Error(err))
		}
		linked++
	}

	logger.Info("seed complete",
		zap.Int("datasets", len(seed.Datasets)),
		zap.Int("links", linked),
	)
}
