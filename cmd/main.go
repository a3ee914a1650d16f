package cmd

import (
	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/controller"
	"github.com/45air/airlocal/ui"
)

type Handler struct {
	ctrl  *controller.Controller
	cfg   *configs.Store
	asker ui.Asker
}

func New(cfg *configs.Store) *Handler {
	return &Handler{
		ctrl:  controller.New(cfg),
		cfg:   cfg,
		asker: ui.TerminalAsker{},
	}
}

// NewWithController is used by tests to swap the collaborators.
func NewWithController(cfg *configs.Store, ctrl *controller.Controller, asker ui.Asker) *Handler {
	return &Handler{
		ctrl:  ctrl,
		cfg:   cfg,
		asker: asker,
	}
}
