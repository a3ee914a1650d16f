package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/45air/airlocal/constants"
	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/ui"
)

func hostArg(req *entity.CommandRequest) (string, error) {
	host := req.Arg(0)
	if host == "" {
		return "", errors.HostnameNotSpecified
	}
	return host, nil
}

func (h *Handler) Start(ctx context.Context, req *entity.CommandRequest) error {
	host, err := hostArg(req)
	if err != nil {
		return err
	}
	ui.StartSpinner(&ui.SpinnerCfg{Message: fmt.Sprintf("Starting %s", host)})
	if err := h.ctrl.StartEnvironment(ctx, host); err != nil {
		ui.StopSpinner("")
		return err
	}
	ui.StopSpinner(fmt.Sprintf("%s started", ui.MagentaText(host)))
	return nil
}

func (h *Handler) Stop(ctx context.Context, req *entity.CommandRequest) error {
	host, err := hostArg(req)
	if err != nil {
		return err
	}
	ui.StartSpinner(&ui.SpinnerCfg{Message: fmt.Sprintf("Stopping %s", host)})
	if err := h.ctrl.StopEnvironment(ctx, host); err != nil {
		ui.StopSpinner("")
		return err
	}
	ui.StopSpinner(fmt.Sprintf("%s stopped", ui.MagentaText(host)))
	return nil
}

func (h *Handler) Restart(ctx context.Context, req *entity.CommandRequest) error {
	if err := h.Stop(ctx, req); err != nil {
		return err
	}
	return h.Start(ctx, req)
}

func (h *Handler) Delete(ctx context.Context, req *entity.CommandRequest) error {
	host, err := hostArg(req)
	if err != nil {
		return err
	}
	record, err := h.ctrl.FindEnvironment(host)
	if err != nil {
		return err
	}

	yes, err := req.Cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	if !yes {
		confirmed, err := ui.PromptConfirm(fmt.Sprintf("Delete %s and all of its files", record.PrimaryHost()))
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	warnings, err := h.ctrl.DeleteEnvironment(ctx, record)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", ui.MagentaText(record.PrimaryHost()))
	if len(warnings) > 0 {
		fmt.Printf("Finished with %d warning(s)\n", len(warnings))
	}
	return nil
}

func (h *Handler) List(ctx context.Context, req *entity.CommandRequest) error {
	records, err := h.ctrl.ListEnvironments()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No environments yet. Run", ui.Bold("airlocal create"), "to make one.")
		return nil
	}

	for _, r := range records {
		if r.Incomplete {
			fmt.Println(ui.MagentaText(r.Slug), ui.CyanText(r.Path), ui.YellowText("(incomplete, remove with airlocal delete "+r.Slug+")"))
			continue
		}
		fmt.Println(ui.MagentaText(r.PrimaryHost()), ui.CyanText(r.Path))
		if len(r.Hosts) > 1 {
			fmt.Print(ui.PrefixLines(strings.TrimSuffix(ui.UnorderedList(r.Hosts[1:]), "\n"), "  "))
		}
	}
	return nil
}

func (h *Handler) Open(ctx context.Context, req *entity.CommandRequest) error {
	host, err := hostArg(req)
	if err != nil {
		return err
	}
	record, err := h.ctrl.GetEnvironment(host)
	if err != nil {
		return err
	}

	page := "site"
	for _, name := range []string{"admin", "mail"} {
		if set, _ := req.Cmd.Flags().GetBool(name); set {
			page = name
		}
	}
	return h.ctrl.OpenInBrowser(record.PrimaryHost(), constants.SiteURLMap[page])
}

func (h *Handler) CacheClear(ctx context.Context, req *entity.CommandRequest) error {
	ui.StartSpinner(&ui.SpinnerCfg{Message: "Clearing the shared cache"})
	if err := h.ctrl.ClearCache(ctx); err != nil {
		ui.StopSpinner("")
		return err
	}
	ui.StopSpinner(ui.GreenText("Cache cleared"))
	return nil
}

// Panic prints the recovered value so it can be reported.
func (h *Handler) Panic(ctx context.Context, msg, stack, command string, args []string) error {
	ui.Error(os.Stderr, "airlocal %s crashed: %s", command, msg)
	fmt.Fprintln(os.Stderr, ui.PrefixLines(stack, "  "))
	return nil
}
