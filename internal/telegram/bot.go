package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"prep-meter/internal/report"
	"prep-meter/internal/services"
)

// requestTimeout bounds the store work behind one command.
const requestTimeout = 30 * time.Second

type handler func(ctx context.Context, msg *tgbotapi.Message)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	services *services.ServiceManager
	location *time.Location
	logger   *zap.Logger
	handlers map[string]handler
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager, loc *time.Location, logger *zap.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		services: serviceManager,
		location: loc,
		logger:   logger,
		handlers: make(map[string]handler),
	}

	bot.registerHandlers()
	logger.Info("bot initialized", zap.String("username", botAPI.Self.UserName))
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleStart
	b.handlers["/help"] = b.handleHelp
	b.handlers["/today"] = b.handleToday
	b.handlers["/day"] = b.handleDay
	b.handlers["/week"] = b.handleWeek
	b.handlers["/report"] = b.handleReport
	b.handlers["/wellness"] = b.handleWellness
	b.handlers["/teachers"] = b.handleTeachers
	b.handlers["/chapters"] = b.handleChapters
}

func (b *Bot) SendMessage(text string) error {
	return b.sendTo(b.chatID, text)
}

func (b *Bot) sendTo(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.bot.Send(msg)
	return err
}

// SendReport delivers a formatted snapshot to the configured chat.
func (b *Bot) SendReport(heading string, data *report.ReportData, insights []string) error {
	return b.SendMessage(FormatReport(heading, data, insights))
}

// reply sends text and logs delivery failures instead of stopping the bot.
func (b *Bot) reply(text string) {
	if err := b.SendMessage(text); err != nil {
		b.logger.Error("send message failed", zap.Error(err))
	}
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)
	defer b.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.Chat.ID != b.chatID {
		b.logger.Warn("message from unknown chat", zap.Int64("chat_id", update.Message.Chat.ID))
		if err := b.sendTo(update.Message.Chat.ID, "⛔ Access denied"); err != nil {
			b.logger.Error("send message failed", zap.Error(err))
		}
		return
	}

	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}

	command := "/" + msg.Command()
	h, exists := b.handlers[command]
	if !exists {
		b.reply("❌ Unknown command. Use /help")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	b.logger.Debug("handling command", zap.String("command", command), zap.String("args", msg.CommandArguments()))
	h(ctx, msg)
}

func commandArgs(msg *tgbotapi.Message) []string {
	return strings.Fields(msg.CommandArguments())
}
