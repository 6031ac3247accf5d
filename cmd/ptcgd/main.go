package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/config"
	"github.com/peterkuimelis/ptcgd/internal/deck"
	"github.com/peterkuimelis/ptcgd/internal/httpapi"
	"github.com/peterkuimelis/ptcgd/internal/repo"
	"github.com/peterkuimelis/ptcgd/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	decksFile := flag.String("decks", "", "decklist YAML to preload (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *decksFile != "" {
		cfg.Decks.File = *decksFile
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cat := card.NewCatalog()
	for _, path := range append(cfg.Cards.SetFiles, flag.Args()...) {
		res := cat.LoadSetFile(path)
		if !res.Success {
			logger.Error("set load failed",
				zap.String("filename", res.Filename),
				zap.Error(res.Err))
			continue
		}
		logger.Info("set loaded",
			zap.String("author", res.Author),
			zap.String("setName", res.SetName),
			zap.String("version", res.Version),
			zap.Int("cards", res.Loaded))
	}

	deckRepo := repo.NewMemoryDeckRepository()
	matchRepo := repo.NewMemoryMatchRepository()
	deckSvc := service.NewDeckService(deckRepo, cat, logger)
	matchSvc := service.NewMatchService(matchRepo, deckRepo, cat, logger)

	if cfg.Decks.File != "" {
		decks, err := deck.ParseDecklistFile(cfg.Decks.File, "system", cat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, d := range decks {
			if _, err := deckSvc.SaveDeck(context.Background(), d); err != nil {
				logger.Error("deck preload failed", zap.String("deck", d.Name), zap.Error(err))
			}
		}
	}

	srv := httpapi.NewServer(matchSvc, deckSvc, cat, logger)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("ptcgd listening", zap.String("addr", addr))
	if err := srv.Router().Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildLogger(lc config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if lc.Level != "" {
		lvl, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zc.Build()
}
