package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/adlweddings/wedding-lead-platform/internal/config"
	"github.com/adlweddings/wedding-lead-platform/internal/notify"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

// BuildEmailSender picks the mail provider from config: "sendgrid", "ses",
// "none", or "auto" (SendGrid when an API key is present, then SES, then the
// logging stub).
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}

	provider := cfg.EmailProvider
	if provider == "" {
		provider = "auto"
	}

	if provider == "sendgrid" || (provider == "auto" && cfg.SendGridAPIKey != "") {
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			logger.Info("email provider selected", "provider", "sendgrid")
			return sender
		}
		logger.Warn("sendgrid requested but not configured")
	}

	if provider == "ses" || (provider == "auto" && cfg.SESFromEmail != "") {
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
		} else if sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); sender != nil {
			logger.Info("email provider selected", "provider", "ses")
			return sender
		}
	}

	logger.Warn("no email provider configured, lead emails will be logged only")
	return notify.NewStubEmailSender(logger)
}

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, duplicate guard disabled", "error", err)
		return nil
	}
	return client
}
