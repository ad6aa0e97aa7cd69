package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/schoollib-identity/config"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/schoollib-identity/internal/infrastructure/postgres"
	mqinfra "github.com/oksasatya/schoollib-identity/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/schoollib-identity/internal/notification"
	"github.com/oksasatya/schoollib-identity/pkg/helpers"
	"github.com/oksasatya/schoollib-identity/pkg/mailer"
	mailtpl "github.com/oksasatya/schoollib-identity/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env, cfg.LogLevel)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	var sender mailer.Sender = mailer.Discard{}
	if cfg.MailSendEnabled {
		mg, err := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		if err != nil {
			logger.Fatalf("mailer: %v", err)
		}
		sender = mg
	} else {
		logger.Warn("MAIL_SEND_ENABLED=false; notices are rendered but not sent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var profiles repository.UserProfileRepository
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		logger.WithError(err).Warn("postgres unavailable; notices go out without names")
		profiles = memory.NewUserProfileRepository()
	} else {
		defer pool.Close()
		profiles = pginfra.NewUserProfileRepository(pool)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareTopicExchange(ch, cfg.RabbitMQEventsExchange); err != nil {
		logger.Fatalf("exchange declare: %v", err)
	}
	if err := mqinfra.DeclareQueue(ch, cfg.RabbitMQEventsExchange, cfg.RabbitMQEventsQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	notifier := notification.NewNotifier(sender, profiles, mailtpl.Branding{
		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		LogoURL:     cfg.LogoURL,
		SupportURL:  cfg.SupportURL,
		LoginURL:    cfg.LoginURL,
	}, logger)
	consumer := mqinfra.NewConsumer(notifier, logger)

	done := make(chan struct{})
	go func() {
		consumer.Run(ctx, msgs)
		close(done)
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	<-ctx.Done()
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}
