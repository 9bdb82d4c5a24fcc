package sender

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/slack-go/slack"
)

type SlackSender struct {
	client  *slack.Client
	channel string
}

func NewSlack(channel, token string, options ...slack.Option) *SlackSender {
	return &SlackSender{client: slack.New(token, options...), channel: channel}
}

func (s *SlackSender) Post(ctx context.Context, text string) error {
	c, ts, err := s.client.PostMessageContext(
		ctx,
		s.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if isSlackDeliveryErr(err) {
			return fmt.Errorf("%w: error posting msg to slack: %w", ErrDelivery, err)
		}
		return fmt.Errorf("error posting msg to slack: %w", err)
	}

	log.Printf("Msg posted to %s (%s) at %s", s.channel, c, ts)
	return nil
}

func isSlackDeliveryErr(err error) bool {
	var apiErr slack.SlackErrorResponse
	var statusErr slack.StatusCodeError
	var rateErr *slack.RateLimitedError
	var urlErr *url.Error
	return errors.As(err, &apiErr) ||
		errors.As(err, &statusErr) ||
		errors.As(err, &rateErr) ||
		errors.As(err, &urlErr)
}
