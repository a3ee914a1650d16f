package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

type SpinnerCfg struct {
	Message  string
	Tokens   []string
	Duration time.Duration
}

var s = &spinner.Spinner{}

var active bool

func StartSpinner(cfg *SpinnerCfg) {
	if cfg.Tokens == nil {
		cfg.Tokens = spinner.CharSets[14]
	}
	if cfg.Duration.Microseconds() == 0 {
		cfg.Duration = time.Duration(100) * time.Millisecond
	}
	s = spinner.New(cfg.Tokens, cfg.Duration)
	s.Writer = os.Stdout

	if cfg.Message != "" {
		s.Suffix = " " + cfg.Message
	}

	// A spinner on a pipe only produces noise.
	if !SupportsANSICodes() {
		return
	}
	s.Start()
	active = true
}

func StopSpinner(msg string) {
	if msg != "" {
		s.FinalMSG = msg + "\n"
	}

	if !active {
		if msg != "" {
			os.Stdout.WriteString(s.FinalMSG)
		}
		return
	}
	s.Stop()
	active = false
}
