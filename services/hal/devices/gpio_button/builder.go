package gpio_button

import (
	"context"
	"time"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/halcore"
)

func init() { core.RegisterBuilder("gpio_button", builder{}) }

type Params struct {
	Pin        int    `json:"pin"`
	Pull       string `json:"pull,omitempty"`   // "none","up","down"
	Invert     bool   `json:"invert,omitempty"` // true if pressed == low
	Edge       string `json:"edge,omitempty"`   // events to report; default "both"
	DebounceMs uint16 `json:"debounce_ms,omitempty"`
	Domain     string `json:"domain,omitempty"`
	Name       string `json:"name,omitempty"`
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := core.DecodeParams[Params](in.Params)
	if err != nil {
		return nil, err
	}
	if p.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	edge := halcore.EdgeBoth
	if p.Edge != "" {
		if edge = halcore.ParseEdge(p.Edge); edge == halcore.EdgeNone {
			return nil, errcode.InvalidParams
		}
	}

	pin, err := in.Res.Reg.ClaimPin(in.ID, p.Pin)
	if err != nil {
		return nil, err
	}
	if err := pin.ConfigureInput(halcore.ParsePull(p.Pull)); err != nil {
		in.Res.Reg.ReleasePin(in.ID, p.Pin)
		return nil, err
	}

	return &Device{
		id:       in.ID,
		pinN:     p.Pin,
		gpio:     pin,
		invert:   p.Invert,
		edge:     edge,
		pub:      in.Res.Pub,
		reg:      in.Res.Reg,
		dom:      p.Domain,
		name:     p.Name,
		debounce: time.Duration(p.DebounceMs) * time.Millisecond,
	}, nil
}
