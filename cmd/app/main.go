package main

import (
	"patientflow/config"
	"patientflow/di"
	"patientflow/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
