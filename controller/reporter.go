package controller

import (
	"fmt"
	"os"

	"github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/ui"
)

// Reporter receives progress from long running operations.
type Reporter interface {
	Step(msg string)
	Warn(w *errors.AdvisoryWarning)
	Info(msg string)
}

// ConsoleReporter prints progress for an operator at a terminal.
type ConsoleReporter struct{}

func (ConsoleReporter) Step(msg string) {
	fmt.Println(msg)
}

func (ConsoleReporter) Warn(w *errors.AdvisoryWarning) {
	ui.Warning(os.Stdout, "%s", w.Error())
}

func (ConsoleReporter) Info(msg string) {
	fmt.Println(ui.CyanText(msg))
}
