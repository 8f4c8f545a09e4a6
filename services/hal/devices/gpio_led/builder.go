package gpio_led

import (
	"context"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
)

func init() { core.RegisterBuilder("gpio_led", builder{}) }

type Params struct {
	Pin       int    `json:"pin"`
	Initial   bool   `json:"initial,omitempty"` // logical on/off
	ActiveLow bool   `json:"active_low,omitempty"`
	Domain    string `json:"domain,omitempty"`
	Name      string `json:"name,omitempty"`
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
	pin, err := in.Res.Reg.ClaimPin(in.ID, p.Pin)
	if err != nil {
		return nil, err
	}
	return &Device{
		id:      in.ID,
		pin:     pin,
		reg:     in.Res.Reg,
		pub:     in.Res.Pub,
		initial: p.Initial,
		low:     p.ActiveLow,
		dom:     p.Domain,
		name:    p.Name,
	}, nil
}

