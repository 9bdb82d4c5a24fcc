package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fatcatfablab/hwbot/config"
	"github.com/fatcatfablab/hwbot/homework"
	"github.com/fatcatfablab/hwbot/practicum"
	"github.com/fatcatfablab/hwbot/sender"
	"github.com/fatcatfablab/hwbot/types"
)

const (
	// Watermark before anything was notified. Not a status the API uses.
	initialStatus = "send"
	failureFmt    = "Сбой в работе программы: %s"
)

// API is the homework statuses endpoint, see practicum.Client.
type API interface {
	GetAPIAnswer(ctx context.Context, from time.Time) (any, error)
}

type Poller struct {
	cfg    config.Config
	api    API
	sender types.Sender

	cursor     time.Time
	lastStatus string
	lastReport string

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

func New(cfg config.Config, api API, s types.Sender) *Poller {
	p := &Poller{
		cfg:        cfg,
		api:        api,
		sender:     s,
		lastStatus: initialStatus,
		now:        time.Now,
		sleep:      sleepCtx,
	}
	if p.cfg.Verdicts == nil {
		p.cfg.Verdicts = homework.DefaultVerdicts()
	}
	p.cursor = p.now()
	return p
}

// Run polls until ctx is cancelled or the credentials go missing. Every other
// failure is logged and retried on the next cycle.
func (p *Poller) Run(ctx context.Context) error {
	log.Printf("polling %s every %s (cursor policy %s)", p.cfg.Endpoint, p.cfg.Interval, p.cfg.Cursor)

	for {
		err := p.Poll(ctx)

		var iterErr *IterationError
		switch {
		case err == nil:
			p.lastReport = ""
		case errors.As(err, &iterErr):
			log.Printf("error polling homework statuses (%s): %s", iterErr.Kind, iterErr.Err)
			p.report(ctx, iterErr)
		default:
			return err
		}

		if !p.sleep(ctx, p.cfg.Interval) {
			log.Print("poller stopped")
			return nil
		}
	}
}

// Poll runs a single iteration. It returns config.ErrMissingCredentials
// unwrapped by IterationError since that one is fatal.
func (p *Poller) Poll(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &IterationError{Kind: KindPanic, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := p.cfg.Check(); err != nil {
		return err
	}

	started := p.now()
	resp, err := p.api.GetAPIAnswer(ctx, p.cursor)
	if err != nil {
		return classify(err)
	}

	if err := homework.CheckResponse(resp); err != nil {
		return &IterationError{Kind: KindResponse, Err: err}
	}

	hw, ok, err := homework.Latest(resp)
	if err != nil {
		return &IterationError{Kind: KindResponse, Err: err}
	}
	if !ok {
		log.Print("no status changes")
		p.advance(resp, started)
		return nil
	}

	status := hw.Status()
	if status == p.lastStatus {
		log.Print("no status changes")
		p.advance(resp, started)
		return nil
	}

	msg, err := p.cfg.Verdicts.ParseStatus(hw)
	if err != nil {
		return &IterationError{Kind: KindStatus, Err: err}
	}

	sent, err := sender.Deliver(ctx, p.sender, msg)
	if err != nil {
		return &IterationError{Kind: KindUnexpected, Err: err}
	}
	if !sent {
		// keep the watermark and the cursor so the change is sent next time
		return nil
	}

	p.lastStatus = status
	p.advance(resp, started)
	return nil
}

// advance moves the cursor when the policy asks for it. Only called once
// nothing is left to notify.
func (p *Poller) advance(resp any, started time.Time) {
	if p.cfg.Cursor != config.CursorAdvance {
		return
	}
	if current, ok := homework.CurrentDate(resp); ok {
		p.cursor = current
	} else {
		p.cursor = started
	}
}

// report sends the failure to the chat unless the same text was the last one
// reported.
func (p *Poller) report(ctx context.Context, iterErr *IterationError) {
	if !p.cfg.ReportErrors || ctx.Err() != nil {
		return
	}

	text := fmt.Sprintf(failureFmt, iterErr.Err)
	if text == p.lastReport {
		return
	}

	sent, err := sender.Deliver(ctx, p.sender, text)
	if err != nil {
		log.Printf("error reporting failure: %s", err)
		return
	}
	if sent {
		p.lastReport = text
	}
}

func classify(err error) *IterationError {
	var statusErr *practicum.HTTPStatusError
	switch {
	case errors.As(err, &statusErr):
		return &IterationError{Kind: KindHTTPStatus, Err: err}
	case errors.Is(err, practicum.ErrTransport):
		return &IterationError{Kind: KindTransport, Err: err}
	case errors.Is(err, practicum.ErrFormat):
		return &IterationError{Kind: KindFormat, Err: err}
	default:
		return &IterationError{Kind: KindUnexpected, Err: err}
	}
}

// sleepCtx reports false if ctx was cancelled before d elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
