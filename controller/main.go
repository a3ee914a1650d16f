package controller

import (
	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/gateway"
)

type Controller struct {
	backend  Backend
	cfg      *configs.Store
	reporter Reporter
}

func New(cfg *configs.Store) *Controller {
	return &Controller{
		backend:  newGatewayBackend(gateway.New()),
		cfg:      cfg,
		reporter: ConsoleReporter{},
	}
}

// NewWithBackend wires the controller to explicit collaborators.
func NewWithBackend(cfg *configs.Store, backend Backend, reporter Reporter) *Controller {
	return &Controller{
		backend:  backend,
		cfg:      cfg,
		reporter: reporter,
	}
}
