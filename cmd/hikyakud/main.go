package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hikyaku/api"
	"hikyaku/pkg/state"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	maxConcurrentTransfers := 4

	dbConnectionString := os.Getenv("DB_CONNECTION_STRING")
	var store *state.Store
	if dbConnectionString == "" {
		log.Println("DB_CONNECTION_STRING not set, running without transfer history persistence")
	} else {
		var err error
		store, err = state.Open(dbConnectionString)
		if err != nil {
			log.Fatal("failed to open transfer store:", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tm := api.NewTaskManager(ctx, store, maxConcurrentTransfers)
	defer tm.Shutdown()

	sweep, err := api.StartExpirySweep(tm, os.Getenv("DRIVE_EXPIRY_SWEEP_CRON"))
	if err != nil {
		log.Fatal("failed to start drive token expiry sweep:", err)
	}
	defer sweep.Stop()

	router := api.SetupRouter(tm)

	fmt.Printf("Starting hikyaku transfer server on port %s...\n", port)
	fmt.Printf("Health check: http://localhost:%s/health\n", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("failed to start server:", err)
	}
}
