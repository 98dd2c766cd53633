package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"

	"assetpool/pkg/config"
	"assetpool/schedule"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	config.InitDB()

	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()
	}

	spec := os.Getenv("KEEPER_CRON")
	if spec == "" {
		spec = "@every 1m"
	}

	c, err := schedule.StartKeeper(config.DB, spec)
	if err != nil {
		logrus.Fatal("Failed to start keeper: ", err)
	}
	defer c.Stop()

	// Service anything already due before the first tick fires.
	schedule.PollOnce(config.DB)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("keeper shutting down")
}
