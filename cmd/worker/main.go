package main

import (
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"

	"assetpool/internal/events"
	"assetpool/internal/handlers/business"
	"assetpool/pkg/config"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	config.InitDB()

	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	msgConsumer, err := config.NewConsumer(business.EventQueue)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Event worker started, waiting for messages...")

	err = msgConsumer.Consume(func(msg []byte) error {
		var evt events.Event
		if err := json.Unmarshal(msg, &evt); err != nil {
			logrus.Errorf("Failed to unmarshal event: %v", err)
			return err
		}

		logrus.WithFields(logrus.Fields{
			"type":    evt.Type,
			"payload": evt.Payload,
			"at":      evt.At,
		}).Info("Domain event received")

		switch evt.Type {
		case business.EventPoolAcquired:
			logrus.WithField("payload", evt.Payload).Info("Asset acquired, proposal window open")
		case business.EventProposalExecuted:
			logrus.WithField("payload", evt.Payload).Info("Development rights granted")
		case business.EventBonusPaid:
			logrus.WithField("payload", evt.Payload).Info("Completion bonus paid out")
		default:
			logrus.Warnf("Unknown event type: %s", evt.Type)
		}

		return nil
	})

	if err != nil {
		log.Fatal("Failed to start consumer: ", err)
	}
}
