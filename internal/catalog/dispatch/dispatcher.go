package dispatch

import (
	"context"

	"github.com/smallbiznis/vitrine/internal/catalog/domain"
)

// Command is one activated card control.
type Command struct {
	Action    domain.Action
	ProductID domain.ProductID
	// Displayed is the stock counter value the operator was looking at.
	Displayed int64
}

type handlerFunc func(ctx context.Context, cmd Command) error

// Dispatcher routes card controls to catalog operations.
type Dispatcher struct {
	svc      domain.Service
	handlers map[domain.Action]handlerFunc
}

func New(svc domain.Service) *Dispatcher {
	d := &Dispatcher{svc: svc}
	d.handlers = map[domain.Action]handlerFunc{
		domain.ActionRemove:        d.remove,
		domain.ActionIncreaseStock: d.increase,
		domain.ActionDecreaseStock: d.decrease,
	}
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) error {
	handler, ok := d.handlers[cmd.Action]
	if !ok {
		return domain.Invalid("action", domain.ErrInvalidAction)
	}
	if cmd.ProductID <= 0 {
		return domain.Invalid("id", domain.ErrInvalidID)
	}
	return handler(ctx, cmd)
}

func (d *Dispatcher) remove(ctx context.Context, cmd Command) error {
	return d.svc.Remove(ctx, cmd.ProductID.Int64())
}

func (d *Dispatcher) increase(ctx context.Context, cmd Command) error {
	return d.svc.PatchStock(ctx, cmd.ProductID.Int64(), IncreasedStock(cmd.Displayed))
}

func (d *Dispatcher) decrease(ctx context.Context, cmd Command) error {
	return d.svc.PatchStock(ctx, cmd.ProductID.Int64(), DecreasedStock(cmd.Displayed))
}

func IncreasedStock(displayed int64) int64 {
	return displayed + 1
}

// DecreasedStock never goes below zero.
func DecreasedStock(displayed int64) int64 {
	if displayed <= 0 {
		return 0
	}
	return displayed - 1
}
