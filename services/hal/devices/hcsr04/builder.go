package hcsr04

import (
	"context"
	"time"

	"bringup-go/drivers/ultrasonic"
	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/halcore"
)

func init() { core.RegisterBuilder("hcsr04", builder{}) }

type Params struct {
	Trigger   int    `json:"trigger"`
	Echo      int    `json:"echo"`
	TimeoutUs uint32 `json:"timeout_us,omitempty"` // echo high limit; 0 => driver default
	Backend   string `json:"backend,omitempty"`    // "" / "busywait", or a registered MCU backend
	Domain    string `json:"domain,omitempty"`
	Name      string `json:"name,omitempty"`
}

// Measurer runs one blocking trigger/echo cycle.
type Measurer interface {
	Measure(ctx context.Context) (ultrasonic.Reading, error)
}

type backendFactory func(trigger, echo int, p Params) (Measurer, error)

// backends are added by build-tagged files.
var backends = map[string]backendFactory{}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := core.DecodeParams[Params](in.Params)
	if err != nil {
		return nil, err
	}
	if p.Trigger < 0 || p.Echo < 0 || p.Trigger == p.Echo {
		return nil, errcode.InvalidParams
	}

	reg := in.Res.Reg
	trig, err := reg.ClaimPin(in.ID, p.Trigger)
	if err != nil {
		return nil, err
	}
	echo, err := reg.ClaimPin(in.ID, p.Echo)
	if err != nil {
		reg.ReleasePin(in.ID, p.Trigger)
		return nil, err
	}
	release := func() {
		reg.ReleasePin(in.ID, p.Trigger)
		reg.ReleasePin(in.ID, p.Echo)
	}

	var m Measurer
	switch p.Backend {
	case "", "busywait":
		_ = trig.ConfigureOutput(false)
		_ = echo.ConfigureInput(halcore.PullDown)
		cfg := ultrasonic.Config{}
		if p.TimeoutUs > 0 {
			cfg.MaxEcho = time.Duration(p.TimeoutUs) * time.Microsecond
		}
		m = ultrasonic.New(trig, echo, reg.Clock(), cfg)
	default:
		f, ok := backends[p.Backend]
		if !ok {
			release()
			return nil, errcode.Wrap(errcode.Unsupported, "hcsr04", nil)
		}
		if m, err = f(p.Trigger, p.Echo, p); err != nil {
			release()
			return nil, err
		}
	}

	return &Device{
		id:      in.ID,
		trigger: p.Trigger,
		echo:    p.Echo,
		timeout: p.TimeoutUs,
		m:       m,
		pub:     in.Res.Pub,
		release: release,
		dom:     p.Domain,
		name:    p.Name,
	}, nil
}
