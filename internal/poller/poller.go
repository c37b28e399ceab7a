// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"github.com/tamzrod/smartheater/internal/registers"
	"github.com/tamzrod/smartheater/internal/status"
)

// Client abstracts the session operation needed by the poller.
type Client interface {
	Read(a registers.Attribute) (any, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval   time.Duration
	Attributes []registers.Attribute
}

// OperatingBlock is the default attribute set read every cycle.
var OperatingBlock = []registers.Attribute{
	registers.ActualTemperatureBoiler,
	registers.ActualTemperatureExternalSensor1,
	registers.ActualTemperatureExternalSensor2,
	registers.ActualTemperaturePCB,
	registers.UserTemperatureNominal,
	registers.RelaisStatus,
	registers.PowerNominalValue,
	registers.HomeTotalPower,
	registers.TotalOperatingSeconds,
	registers.ErrorCounter,
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg    Config
	client Client
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Attributes) == 0 {
		return nil, errors.New("poller: at least one attribute required")
	}
	return &Poller{cfg: cfg, client: client}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() Snapshot {
	snap := Snapshot{
		At:     time.Now(),
		Status: status.Success,
	}

	values := make(map[string]any, len(p.cfg.Attributes))

	for _, a := range p.cfg.Attributes {
		v, err := p.client.Read(a)
		if err != nil {
			snap.Err = err
			snap.Status = status.Classify(err)
			return snap
		}
		values[a.String()] = v
	}

	// Commit only if all reads succeeded
	snap.Values = values
	return snap
}
