package sender

import (
	"context"
	"errors"
	"log"

	"github.com/fatcatfablab/hwbot/types"
)

// ErrDelivery marks a message the messaging service did not accept, either
// because its API refused it or because it could not be reached.
var ErrDelivery = errors.New("message not delivered")

// Deliver posts text through s. Delivery failures are logged and reported as
// false so the caller can retry on its next cycle; any other error is
// returned as is.
func Deliver(ctx context.Context, s types.Sender, text string) (bool, error) {
	if err := s.Post(ctx, text); err != nil {
		if errors.Is(err, ErrDelivery) {
			log.Printf("error sending message: %s", err)
			return false, nil
		}
		return false, err
	}

	log.Print("message sent successfully")
	return true, nil
}

// LogSender only logs what would have been sent.
type LogSender struct {
	Destination string
}

func (l LogSender) Post(_ context.Context, text string) error {
	log.Printf("(silent mode) Msg NOT posted to %s: %s", l.Destination, text)
	return nil
}
