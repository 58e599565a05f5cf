package main

import (
	"log/slog"
	"net/http"
	"os"

	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/salesdash/api"
	"hermannm.dev/salesdash/config"
	"hermannm.dev/salesdash/datastore"
)

func main() {
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))

	conf, err := config.ReadFromEnv()
	if err != nil {
		log.ErrorCause(err, "failed to read config from env")
		os.Exit(1)
	}

	store := datastore.NewStore()
	dashboardAPI := api.NewDashboardAPI(store, http.NewServeMux(), conf.API)

	log.Infof("Listening on port %s...", conf.API.Port)
	if err := dashboardAPI.ListenAndServe(); err != nil {
		log.ErrorCause(err, "server stopped")
		os.Exit(1)
	}
}
