package audit

import (
	"github.com/rs/zerolog"
)

type Event struct {
	BarbershopID string
	UserID       *string
	Action       string
	Entity       string
	EntityID     *string
	Metadata     any
}

type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			d.log.Error().Err(err).
				Str("action", ev.Action).
				Msg("audit write failed")
		}
	}
}

// Dispatch never blocks the request path; on a full queue the event is
// dropped and logged.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
