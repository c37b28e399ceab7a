// internal/poller/builder.go
package poller

import (
	cfg "github.com/tamzrod/smartheater/internal/config"
)

// Build constructs a Poller over client from the poll section of the configuration.
// A zero interval disables polling and returns a nil Poller without error.
func Build(pc cfg.PollConfig, client Client) (*Poller, error) {
	if pc.IntervalMs == 0 {
		return nil, nil
	}

	return New(
		Config{
			Interval:   pc.Interval(),
			Attributes: OperatingBlock,
		},
		client,
	)
}
