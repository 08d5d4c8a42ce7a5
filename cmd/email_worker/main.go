package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clipstream/clipstream-backend/config"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
	"github.com/clipstream/clipstream-backend/pkg/mailer"
)

// Drains the email queue and sends each job through Mailgun. Malformed
// messages are dropped, transient send failures are requeued once.

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		log.Fatal("MAILGUN_DOMAIN and MAILGUN_API_KEY are required")
	}
	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	sub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer sub.Close()

	deliveries, err := sub.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Infof("email worker consuming queue %q", cfg.RabbitMQEmailQueue)
	for {
		select {
		case <-quit:
			logger.Info("email worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			var job mailer.EmailJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				logger.Warnf("dropping malformed email job: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			err := mg.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
			cancel()
			if err != nil {
				logger.Errorf("send to %s failed: %v", job.To, err)
				// requeue only on first failure
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			logger.Infof("sent %q to %s", job.Subject, job.To)
			_ = d.Ack(false)
		}
	}
}
