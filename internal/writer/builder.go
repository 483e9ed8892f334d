// internal/writer/builder.go
package writer

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/sensor-adapter/internal/config"
	"github.com/tamzrod/sensor-adapter/internal/writer/ingest"
	wmodbus "github.com/tamzrod/sensor-adapter/internal/writer/modbus"
	wredis "github.com/tamzrod/sensor-adapter/internal/writer/redis"
)

// BuildPlan converts the adapter config into a publish Plan.
// Assumes config has already passed validation.
func BuildPlan(a cfg.AdapterConfig) Plan {
	plan := Plan{
		Device:         a.Device.Path,
		WarnDistanceMM: int32(a.Safety.WarnDistanceMm),
	}

	if m := a.Publish.Modbus; m != nil {
		plan.Targets = append(plan.Targets, RegisterTarget{
			Kind: KindModbus, Endpoint: m.Endpoint, UnitID: m.UnitID, Address: m.Address,
		})
	}
	if i := a.Publish.Ingest; i != nil {
		plan.Targets = append(plan.Targets, RegisterTarget{
			Kind: KindIngest, Endpoint: i.Endpoint, UnitID: i.UnitID, Address: i.Address,
		})
	}

	return plan
}

// BuildEndpointClients creates one client per configured publish endpoint.
// On failure every client created so far is closed.
func BuildEndpointClients(a cfg.AdapterConfig) (map[string]endpointClient, func() error, error) {
	clients := make(map[string]endpointClient)
	var closers []func() error

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	if m := a.Publish.Modbus; m != nil {
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: m.Endpoint,
			Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("publish modbus: %w", err)
		}
		clients[RegisterTarget{Kind: KindModbus, Endpoint: m.Endpoint}.key()] = c
		closers = append(closers, c.Close)
	}

	if i := a.Publish.Ingest; i != nil {
		c, err := ingest.NewEndpointClient(ingest.Config{
			Endpoint: i.Endpoint,
			Timeout:  time.Duration(i.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("publish ingest: %w", err)
		}
		clients[RegisterTarget{Kind: KindIngest, Endpoint: i.Endpoint}.key()] = c
		closers = append(closers, c.Close)
	}

	return clients, closeAll, nil
}

// BuildDocumentWriter connects the optional Redis document sink.
// It returns a nil Writer and a no-op close when none is configured.
func BuildDocumentWriter(a cfg.AdapterConfig) (Writer, func() error, error) {
	r := a.Publish.Redis
	if r == nil {
		return nil, func() error { return nil }, nil
	}

	pub, err := wredis.NewPublisher(wredis.Config{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
		Channel:  r.Channel,
		Key:      r.Key,
		Timeout:  time.Duration(r.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("publish redis: %w", err)
	}
	return NewDocumentWriter(BuildPlan(a), pub), pub.Close, nil
}
