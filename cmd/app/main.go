package main

import (
	"dwell/config"
	"dwell/di"
	"dwell/shared/logger"
)

// @title Dwell API
// @version 1.0
// @description Hostel room booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
