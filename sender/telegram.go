package sender

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	// set instead of chatID for public channels
	channel string
}

// NewTelegram builds a sender without calling the bot API, so an outage at
// startup only shows up as failed deliveries. chat is either a numeric chat id
// or a public channel name such as @homework_updates.
func NewTelegram(token, chat string, client *http.Client) (*TelegramSender, error) {
	return newTelegram(token, chat, tgbotapi.APIEndpoint, client)
}

func newTelegram(token, chat, endpoint string, client *http.Client) (*TelegramSender, error) {
	t := &TelegramSender{}
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		t.chatID = id
	} else if strings.HasPrefix(chat, "@") && len(chat) > 1 {
		t.channel = chat
	} else {
		return nil, fmt.Errorf("invalid telegram chat %q: want a numeric id or @channel", chat)
	}

	if token == "" {
		return nil, errors.New("empty telegram token")
	}

	// tgbotapi.NewBotAPIWithClient would call getMe here
	bot := &tgbotapi.BotAPI{Token: token, Client: client, Buffer: 100}
	bot.SetAPIEndpoint(endpoint)
	t.bot = bot

	log.Printf("telegram sender ready for chat %s", chat)
	return t, nil
}

func (t *TelegramSender) Post(ctx context.Context, text string) error {
	// the bot api client takes no context
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg tgbotapi.MessageConfig
	if t.channel != "" {
		msg = tgbotapi.NewMessageToChannel(t.channel, text)
	} else {
		msg = tgbotapi.NewMessage(t.chatID, text)
	}

	if _, err := t.bot.Send(msg); err != nil {
		if isTelegramDeliveryErr(err) {
			return fmt.Errorf("%w: error posting msg to telegram: %w", ErrDelivery, err)
		}
		return fmt.Errorf("error posting msg to telegram: %w", err)
	}
	return nil
}

func isTelegramDeliveryErr(err error) bool {
	var apiErr *tgbotapi.Error
	var apiErrVal tgbotapi.Error
	var urlErr *url.Error
	return errors.As(err, &apiErr) || errors.As(err, &apiErrVal) || errors.As(err, &urlErr)
}
