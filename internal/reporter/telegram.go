package reporter

import (
	"fmt"

	"go-greenhouse-autopilot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendApplicationResult(rec *models.ApplicationRecord) error {
	icon := "✅"
	if rec.Status == models.StatusFailed {
		icon = "❌"
	}
	text := fmt.Sprintf(
		"%s <b>%s</b>\n"+
			"🏢 %s\n"+
			"📋 %d answers recorded\n"+
			"🔗 <a href=\"%s\">Job posting</a>",
		icon,
		rec.JobTitle,
		rec.CompanyName,
		len(rec.Responses),
		rec.JobURL,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Autopilot Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}
