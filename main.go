package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/45air/airlocal/cmd"
	"github.com/45air/airlocal/configs"
	"github.com/45air/airlocal/constants"
	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "airlocal",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       constants.Version,
	Short:         "Local WordPress environments on Docker",
	Long:          "Create and manage local WordPress environments backed by docker compose.",
}

/* contextualize converts a HandlerFunction to a cobra function
 */
func contextualize(fn entity.HandlerFunction, panicFn entity.PanicFunction) entity.CobraFunction {
	return func(cmd *cobra.Command, args []string) (err error) {
		// Ctrl-C cancels ctx so deferred cleanup such as lock release runs.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		defer func() {
			if r := recover(); r != nil {
				panicFn(ctx, fmt.Sprint(r), string(debug.Stack()), cmd.Name(), args)
				err = errors.Errorf("airlocal %s stopped unexpectedly", cmd.Name())
			}
		}()

		req := &entity.CommandRequest{
			Cmd:  cmd,
			Args: args,
		}
		return fn(ctx, req)
	}
}

func init() {
	// Initializes all commands
	handler := cmd.New(configs.New())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a new environment",
		Args:  cobra.NoArgs,
		RunE:  contextualize(handler.Create, handler.Panic),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "start <hostname>",
		Short: "Start an environment",
		Args:  cobra.ExactArgs(1),
		RunE:  contextualize(handler.Start, handler.Panic),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stop <hostname>",
		Short: "Stop an environment",
		Args:  cobra.ExactArgs(1),
		RunE:  contextualize(handler.Stop, handler.Panic),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "restart <hostname>",
		Short: "Restart an environment",
		Args:  cobra.ExactArgs(1),
		RunE:  contextualize(handler.Restart, handler.Panic),
	})

	deleteCmd := &cobra.Command{
		Use:   "delete <hostname>",
		Short: "Remove an environment, its database and its files",
		Args:  cobra.ExactArgs(1),
		RunE:  contextualize(handler.Delete, handler.Panic),
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all environments",
		Args:  cobra.NoArgs,
		RunE:  contextualize(handler.List, handler.Panic),
	})

	openCmd := &cobra.Command{
		Use:   "open <hostname>",
		Short: "Open an environment in the browser",
		Args:  cobra.ExactArgs(1),
		RunE:  contextualize(handler.Open, handler.Panic),
	}
	openCmd.Flags().Bool("admin", false, "Open the WordPress dashboard")
	openCmd.Flags().Bool("mail", false, "Open the mail catcher")
	rootCmd.AddCommand(openCmd)

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the shared object cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the shared cache volume",
		Args:  cobra.NoArgs,
		RunE:  contextualize(handler.CacheClear, handler.Panic),
	})
	rootCmd.AddCommand(cacheCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change airlocal settings",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(1),
		RunE:  contextualize(handler.ConfigGet, handler.Panic),
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE:  contextualize(handler.ConfigSet, handler.Panic),
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE:  contextualize(handler.ConfigList, handler.Panic),
	})
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Get version of the airlocal CLI",
		Args:  cobra.NoArgs,
		RunE:  contextualize(handler.Version, handler.Panic),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if strings.Contains(err.Error(), "unknown command") {
			suggStr := "\nS"

			suggestions := rootCmd.SuggestionsFor(os.Args[1])
			if len(suggestions) > 0 {
				suggStr = fmt.Sprintf(" Did you mean \"%s\"?\nIf not, s", suggestions[0])
			}

			fmt.Printf("Unknown command \"%s\" for \"%s\".%s"+
				"ee \"airlocal --help\" for available commands.\n",
				os.Args[1], rootCmd.CommandPath(), suggStr)
		} else {
			ui.Error(os.Stderr, "%s", err)
		}
		os.Exit(1)
	}
}
