package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"report_relay_bot/internal/app"
	"report_relay_bot/internal/infra/config"
	idb "report_relay_bot/internal/infra/database"
	"report_relay_bot/internal/infra/logger"
	"report_relay_bot/internal/infra/scheduler"
	"report_relay_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	mainLogger.WithFields(logrus.Fields{
		"environment":   cfg.Environment,
		"has_recipient": cfg.HasRecipient(),
		"admin_chat_id": cfg.AdminChatID,
	}).Info("Configuration loaded")
	if !cfg.HasRecipient() {
		mainLogger.Warn("ADMIN_CHAT_ID is not set: reports cannot be relayed until it is configured. Use /myid to find the chat id.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Database Connection
	db, err := idb.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	mainLogger.WithField("dialect", db.Dialect).Info("Database connection established successfully.")

	reportRepo := idb.NewReportRepository(db)

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: time.Duration(cfg.PollTimeout) * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	client := telegram.NewTelebotAdapter(bot)

	relayService := app.NewRelayService(app.NewDraftTracker(), reportRepo, client, cfg.AdminChatID, logger.Component("relay"))
	adminService := app.NewAdminService(reportRepo, cfg.AdminChatID, cfg.ExportDir)

	reminders := scheduler.NewReminderScheduler(client, logger.Component("reminders"))
	reminders.Start()

	// Register Handlers
	handlerLogger := logger.Component("telegram")
	telegram.RegisterBotCommands(bot, relayService, adminService, handlerLogger)
	telegram.RegisterAdminHandlers(ctx, bot, adminService, client, handlerLogger)
	telegram.RegisterReminderHandlers(bot, reminders, handlerLogger)
	telegram.RegisterReportHandlers(ctx, bot, relayService, handlerLogger)
	mainLogger.Info("Command handlers registered.")

	go bot.Start()
	mainLogger.WithField("bot", bot.Me.Username).Info("Bot started")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	cancel()
	reminders.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
