package errors

import (
	"fmt"

	"github.com/45air/airlocal/ui"
)

type AirlocalError error

var (
	DockerNotRunning      AirlocalError = fmt.Errorf("%s\nStart Docker and try again.", ui.RedText("Docker does not appear to be running."))
	EnvironmentNotFound   AirlocalError = fmt.Errorf("%s\nRun %s to see the environments on this machine.", ui.RedText("Environment not found."), ui.Bold("airlocal list"))
	HostnameNotSpecified  AirlocalError = fmt.Errorf("%s\nRun %s", ui.RedText("Specify the hostname of an environment."), ui.Bold("airlocal <command> <hostname>"))
	ConfigKeyNotSpecified AirlocalError = fmt.Errorf("%s\nRun %s", ui.RedText("Specify a configuration key."), ui.Bold("airlocal config get <key>"))
	NotInteractive        AirlocalError = fmt.Errorf("%s", ui.RedText("airlocal create needs an interactive terminal."))
)
