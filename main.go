package main

import (
	"flag"
	"log/slog"

	"gojobot/bot"
	"gojobot/bot/flow"
	"gojobot/bot/flows/job"
	"gojobot/bot/flows/payment"
	"gojobot/bot/flows/registration"
	"gojobot/bot/flows/training"
	"gojobot/bot/review"
	"gojobot/internal/config"
	repository "gojobot/internal/database"
	"gojobot/internal/http-server/api"
	"gojobot/internal/lib/logger"
	"gojobot/internal/lib/sl"
	"gojobot/internal/service/files"
	"gojobot/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting gojobot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.Error("mongo client", sl.Err(err))
		return
	}
	if db == nil {
		lg.Error("mongo is disabled, nothing to store intake records in")
		return
	}
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	var store files.Store
	if conf.Files.Backend == "gridfs" {
		store = files.NewGridStore(db, lg)
		lg.Info("artifact store initialized", slog.String("backend", "gridfs"))
	} else {
		store, err = files.NewDiskStore(conf.Files.UploadDir, lg)
		if err != nil {
			lg.Error("disk store", sl.Err(err))
			return
		}
		lg.With(
			slog.String("dir", conf.Files.UploadDir),
		).Info("artifact store initialized", slog.String("backend", "disk"))
	}

	hub := ws.NewHub(lg)
	go hub.Run()

	engine := flow.NewEngine(flow.NewMongoStorage(db), lg)

	accounts := payment.Accounts{
		CBE:      conf.Payment.CBEAccount,
		Abissnya: conf.Payment.AbissnyaAccount,
		Telebirr: conf.Payment.TelebirrAccount,
	}
	regCfg := registration.Config{Fee: conf.Payment.RegistrationFee, Accounts: accounts}
	trCfg := training.Config{Fee: conf.Payment.TrainingFee, Accounts: accounts}

	var tgBot *bot.TgBot
	var sender review.Sender = review.NopSender{}
	if conf.Telegram.Enabled {
		tgBot, err = bot.NewTgBot(conf, engine, db, lg)
		if err != nil {
			lg.Error("telegram bot", sl.Err(err))
			return
		}
		sender = tgBot.Messenger()
	}

	rv := review.NewService(db, sender, conf.Telegram.AdminIds, hub, lg)

	engine.Register(registration.NewFlow(db, store, rv, hub, regCfg))
	engine.Register(registration.NewPaymentFlow(db, store, rv, regCfg))
	engine.Register(training.NewFlow(db, store, rv, hub, trCfg))
	engine.Register(training.NewPaymentFlow(db, store, rv, trCfg))
	engine.Register(job.NewFlow(db, store, hub))

	if tgBot != nil {
		tgBot.SetReview(rv)
		go func() {
			if err := tgBot.Start(); err != nil {
				lg.Error("telegram bot stopped", sl.Err(err))
			}
		}()
		lg.With(
			slog.String("bot_name", conf.Telegram.BotName),
		).Info("telegram bot initialized")
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, db, rv, store, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
