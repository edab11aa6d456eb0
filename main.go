package main

import (
	"context"
	"time"

	"gallery-app/config"
	"gallery-app/database"
	routes "gallery-app/internal/app/http"
	"gallery-app/internal/infra/chain"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	if config.CHAIN_RPC_URL != "" {
		client := chain.NewClient(config.CHAIN_RPC_URL)
		chain.StartConfirmationLoop(
			context.Background(),
			database.DB,
			client,
			time.Duration(config.CHAIN_POLL_SECONDS)*time.Second,
		)
		logrus.WithField("rpc", config.CHAIN_RPC_URL).Info("chain confirmation loop started")
	} else {
		logrus.Warn("CHAIN_RPC_URL not set; crypto orders will stay in processing")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	if err := r.Run(":" + config.PORT); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
