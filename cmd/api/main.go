package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pocket-tracker/api"
	"pocket-tracker/config"
	"pocket-tracker/database"
	"pocket-tracker/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Init(&cfg.Log)

	db := database.New(&cfg.DB)

	apiSrv := api.New(db, &cfg.Server)
	apiSrv.Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	apiSrv.Stop()
}
