package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/callbackquery"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"gojobot/bot/flow"
	"gojobot/bot/flows/job"
	"gojobot/bot/flows/registration"
	"gojobot/bot/flows/training"
	"gojobot/bot/review"
	"gojobot/bot/telegram"
	"gojobot/entity"
	"gojobot/internal/config"
	"gojobot/internal/lib/sl"
)

// UserRepository records everyone who talks to the bot.
type UserRepository interface {
	UpsertUser(user entity.User) error
}

// TgBot routes Telegram updates to the flow engine and the review
// service.
type TgBot struct {
	log       *slog.Logger
	api       *tgbotapi.Bot
	cfg       *config.Config
	engine    *flow.Engine
	messenger *telegram.Messenger
	review    *review.Service
	users     UserRepository
}

func NewTgBot(cfg *config.Config, engine *flow.Engine, users UserRepository, log *slog.Logger) (*TgBot, error) {
	api, err := tgbotapi.NewBot(cfg.Telegram.ApiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %w", err)
	}

	return &TgBot{
		log:       log.With(sl.Module("tgbot")),
		api:       api,
		cfg:       cfg,
		engine:    engine,
		messenger: telegram.NewMessenger(api),
		users:     users,
	}, nil
}

// SetReview wires the payment review service. It needs the bot's
// messenger, so it is built after the bot and attached here before
// Start.
func (t *TgBot) SetReview(rv *review.Service) {
	t.review = rv
}

// Messenger returns the transport adapter the flows send through.
func (t *TgBot) Messenger() *telegram.Messenger {
	return t.messenger
}

// Start registers all handlers and polls for updates until the process
// exits.
func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Error("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	dispatcher.AddHandler(handlers.NewCommand("start", t.cmdStart))
	dispatcher.AddHandler(handlers.NewCommand("help", t.cmdHelp))
	dispatcher.AddHandler(handlers.NewCommand("about", t.cmdAbout))
	dispatcher.AddHandler(handlers.NewCommand("getmyid", t.cmdGetMyId))
	dispatcher.AddHandler(handlers.NewCommand("cancel", t.cmdCancel))

	dispatcher.AddHandler(handlers.NewCommand("register", t.startFlow(registration.FlowID)))
	dispatcher.AddHandler(handlers.NewCommand("training", t.startFlow(training.FlowID)))
	dispatcher.AddHandler(handlers.NewCommand("job", t.startFlow(job.FlowID)))
	dispatcher.AddHandler(handlers.NewCommand("register_payment", t.startFlow(registration.PaymentFlowID)))
	dispatcher.AddHandler(handlers.NewCommand("training_payment", t.startFlow(training.PaymentFlowID)))

	dispatcher.AddHandler(handlers.NewCommand("admin", t.cmdAdmin))
	dispatcher.AddHandler(handlers.NewCommand("list_pending_payments", t.adminReply(func(_ []string) (string, error) {
		return t.review.PendingRegistrations()
	})))
	dispatcher.AddHandler(handlers.NewCommand("list_pending_training_payments", t.adminReply(func(_ []string) (string, error) {
		return t.review.PendingTrainings()
	})))
	dispatcher.AddHandler(handlers.NewCommand("admin_registrations", t.adminReply(func(_ []string) (string, error) {
		return t.review.Registrations()
	})))
	dispatcher.AddHandler(handlers.NewCommand("admin_trainings", t.adminReply(func(_ []string) (string, error) {
		return t.review.Trainings()
	})))
	dispatcher.AddHandler(handlers.NewCommand("admin_jobs", t.adminReply(func(_ []string) (string, error) {
		return t.review.Jobs()
	})))
	dispatcher.AddHandler(handlers.NewCommand("admin_user", t.cmdAdminUser))
	dispatcher.AddHandler(handlers.NewCommand("approve_payment", t.cmdReview(review.KindRegistration, true)))
	dispatcher.AddHandler(handlers.NewCommand("reject_payment", t.cmdReview(review.KindRegistration, false)))
	dispatcher.AddHandler(handlers.NewCommand("approve_training_payment", t.cmdReview(review.KindTraining, true)))
	dispatcher.AddHandler(handlers.NewCommand("reject_training_payment", t.cmdReview(review.KindTraining, false)))

	dispatcher.AddHandler(handlers.NewCallback(callbackquery.Prefix("rv:"), t.onReviewCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.All, t.onMessage))

	updater := ext.NewUpdater(dispatcher, nil)
	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}

	t.log.Info("bot polling", slog.String("username", t.api.Username))
	updater.Idle()
	return nil
}

func (t *TgBot) cmdStart(b *tgbotapi.Bot, ctx *ext.Context) error {
	t.rememberUser(ctx)
	return t.messenger.SendText(ctx.EffectiveChat.Id, startText)
}

func (t *TgBot) cmdHelp(b *tgbotapi.Bot, ctx *ext.Context) error {
	return t.messenger.SendText(ctx.EffectiveChat.Id, helpText)
}

func (t *TgBot) cmdAbout(b *tgbotapi.Bot, ctx *ext.Context) error {
	return t.messenger.SendText(ctx.EffectiveChat.Id, aboutText)
}

func (t *TgBot) cmdGetMyId(b *tgbotapi.Bot, ctx *ext.Context) error {
	return t.messenger.SendText(ctx.EffectiveChat.Id, fmt.Sprintf("Your Telegram ID: %d", ctx.EffectiveUser.Id))
}

func (t *TgBot) cmdCancel(b *tgbotapi.Bot, ctx *ext.Context) error {
	had, err := t.engine.Cancel(context.Background(), ctx.EffectiveUser.Id)
	if err != nil {
		return err
	}
	if !had {
		return t.messenger.SendText(ctx.EffectiveChat.Id, "Nothing to cancel.")
	}
	return t.messenger.SendText(ctx.EffectiveChat.Id, "Cancelled. Use /register, /training or /job to start again.")
}

// startFlow builds a command handler that drops any draft in progress
// and starts the named flow.
func (t *TgBot) startFlow(id flow.FlowID) handlers.Response {
	return func(b *tgbotapi.Bot, ctx *ext.Context) error {
		t.rememberUser(ctx)

		userId := ctx.EffectiveUser.Id
		if _, err := t.engine.Cancel(context.Background(), userId); err != nil {
			return err
		}
		return t.engine.Start(context.Background(), t.messenger, userId, ctx.EffectiveChat.Id, id, userLanguage(ctx))
	}
}

func (t *TgBot) cmdAdmin(b *tgbotapi.Bot, ctx *ext.Context) error {
	if !t.cfg.IsAdmin(ctx.EffectiveUser.Id) {
		return t.messenger.SendText(ctx.EffectiveChat.Id, "This command is for reviewers only.")
	}
	return t.messenger.SendText(ctx.EffectiveChat.Id, adminText)
}

// adminReply wraps a review query into an admin-gated command handler.
func (t *TgBot) adminReply(fn func(args []string) (string, error)) handlers.Response {
	return func(b *tgbotapi.Bot, ctx *ext.Context) error {
		if !t.cfg.IsAdmin(ctx.EffectiveUser.Id) {
			return t.messenger.SendText(ctx.EffectiveChat.Id, "This command is for reviewers only.")
		}
		out, err := fn(ctx.Args()[1:])
		if err != nil {
			return err
		}
		return t.messenger.SendText(ctx.EffectiveChat.Id, out)
	}
}

func (t *TgBot) cmdAdminUser(b *tgbotapi.Bot, ctx *ext.Context) error {
	return t.adminReply(func(args []string) (string, error) {
		if len(args) != 1 {
			return "Usage: /admin_user <telegram id>", nil
		}
		var telegramId int64
		if _, err := fmt.Sscanf(args[0], "%d", &telegramId); err != nil {
			return "Usage: /admin_user <telegram id>", nil
		}
		return t.review.UserSummary(telegramId)
	})(b, ctx)
}

// cmdReview builds the /approve_* and /reject_* command handlers.
func (t *TgBot) cmdReview(kind string, approve bool) handlers.Response {
	return func(b *tgbotapi.Bot, ctx *ext.Context) error {
		args := ctx.Args()
		if len(args) != 2 {
			return t.messenger.SendText(ctx.EffectiveChat.Id, "Usage: "+args[0]+" <record id>")
		}

		var ack string
		var err error
		if approve {
			ack, err = t.review.Approve(ctx.EffectiveUser.Id, kind, args[1])
		} else {
			ack, err = t.review.Reject(ctx.EffectiveUser.Id, kind, args[1])
		}
		if err != nil {
			return err
		}
		return t.messenger.SendText(ctx.EffectiveChat.Id, ack)
	}
}

func (t *TgBot) onReviewCallback(b *tgbotapi.Bot, ctx *ext.Context) error {
	cb := ctx.Update.CallbackQuery

	ack, err := t.review.HandleCallback(cb.From.Id, cb.Data)
	if err != nil {
		t.log.Error("review callback", sl.Err(err))
		ack = "Review failed, see logs."
	}

	_, _ = cb.Answer(b, &tgbotapi.AnswerCallbackQueryOpts{Text: ack})
	if ack != "" {
		return t.messenger.SendText(cb.From.Id, ack)
	}
	return nil
}

// onMessage feeds any non-command message into the flow engine.
func (t *TgBot) onMessage(b *tgbotapi.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	if msg == nil || strings.HasPrefix(msg.Text, "/") {
		return nil
	}

	t.rememberUser(ctx)

	handled, err := t.engine.HandleInput(context.Background(), t.messenger, ctx.EffectiveUser.Id, inputFromMessage(msg))
	if err != nil {
		return err
	}
	if !handled {
		return t.messenger.SendText(ctx.EffectiveChat.Id, idleText)
	}
	return nil
}

func inputFromMessage(msg *tgbotapi.Message) flow.Input {
	in := flow.Input{Text: msg.Text}
	if in.Text == "" {
		in.Text = msg.Caption
	}

	switch {
	case msg.Document != nil:
		in.File = &flow.FileInput{
			FileID: msg.Document.FileId,
			Name:   msg.Document.FileName,
			Size:   msg.Document.FileSize,
		}
	case len(msg.Photo) > 0:
		// last photo size is the largest
		photo := msg.Photo[len(msg.Photo)-1]
		in.File = &flow.FileInput{
			FileID: photo.FileId,
			Name:   "photo.jpg",
			Size:   photo.FileSize,
		}
	}
	return in
}

func (t *TgBot) rememberUser(ctx *ext.Context) {
	if t.users == nil || ctx.EffectiveUser == nil {
		return
	}
	u := ctx.EffectiveUser
	err := t.users.UpsertUser(entity.User{
		TelegramId:   u.Id,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		LanguageCode: u.LanguageCode,
		IsBot:        u.IsBot,
	})
	if err != nil {
		t.log.Warn("upserting user", slog.Int64("user_id", u.Id), sl.Err(err))
	}
}

func userLanguage(ctx *ext.Context) string {
	if ctx.EffectiveUser != nil && ctx.EffectiveUser.LanguageCode == "am" {
		return "am"
	}
	return "en"
}
