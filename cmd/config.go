package cmd

import (
	"context"
	"fmt"

	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/ui"
)

func (h *Handler) ConfigGet(ctx context.Context, req *entity.CommandRequest) error {
	key := req.Arg(0)
	if key == "" {
		return errors.ConfigKeyNotSpecified
	}
	value, err := h.cfg.Get(key)
	if err != nil {
		return err
	}
	if value == nil {
		return &errors.ValidationError{Field: key, Message: fmt.Sprintf("%s is not set", key)}
	}
	fmt.Println(value)
	return nil
}

func (h *Handler) ConfigSet(ctx context.Context, req *entity.CommandRequest) error {
	key, raw := req.Arg(0), req.Arg(1)
	if key == "" {
		return errors.ConfigKeyNotSpecified
	}
	if len(req.Args) < 2 {
		return &errors.ValidationError{Field: key, Message: fmt.Sprintf("no value given for %s", key)}
	}
	if err := h.cfg.Set(key, configs.ParseValue(raw)); err != nil {
		return err
	}
	fmt.Printf("%s set to %s\n", ui.Bold(key), ui.CyanText(raw))
	return nil
}

func (h *Handler) ConfigList(ctx context.Context, req *entity.CommandRequest) error {
	values, err := h.cfg.All()
	if err != nil {
		return err
	}
	fmt.Print(ui.KeyValues(values))
	return nil
}
