package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"pocket-tracker/config"
	"pocket-tracker/database"
	"pocket-tracker/log"
	"pocket-tracker/net"
	"pocket-tracker/pocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Init(&cfg.Log)

	db := database.New(&cfg.DB)
	oracle := net.NewOracleClient(&cfg.Net)
	feed := net.NewFeedClient(&cfg.Net)

	tracker := pocket.NewTracker(db, oracle, feed)
	if err := tracker.Run(cfg.Tracker.Project); err != nil {
		zap.S().Errorf("Revenue import failed: %s", err)
		_ = zap.L().Sync()
		os.Exit(1)
	}
	_ = zap.L().Sync()
}
