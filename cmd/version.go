package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/45air/airlocal/constants"
	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/ui"
)

func (h *Handler) Version(ctx context.Context, req *entity.CommandRequest) error {
	fmt.Printf("airlocal version %s\n", constants.Version)
	if constants.Version == "source" {
		return nil
	}

	latest, err := h.ctrl.GetLatestVersion(ctx)
	if err != nil {
		// Offline is not a reason to fail.
		return nil
	}
	if latest != "" && latest != constants.Version {
		ui.Warning(os.Stdout, "A newer version of airlocal is available, please update to: %s", latest)
	}
	return nil
}
