package main

import (
	"os"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/cli"
	"saldo/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("audit-worker")
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting saldo-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	auditWorker, err := worker.NewAuditWorker(cfg.AuditLogPath, 30*time.Second)
	if err != nil {
		logger.Error("Failed to open audit log", "error", err, "path", cfg.AuditLogPath)
		os.Exit(1)
	}
	defer auditWorker.Close()

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	logger.Info("Consuming transaction events",
		"queue", cfg.AMQPQueue,
		"audit_log", cfg.AuditLogPath)

	if err := auditWorker.Run(ctx, amqpClient); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("Worker stopped")
}
