package main

import (
	"gestimmo-api/core/logger"
	"gestimmo-api/core/server"
)

// @title GestImmo API
// @version 1.0
// @description API Backend pour GestImmo - planification des interventions immobilières

// @contact.name API Support
// @contact.email support@gestimmo.fr

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
