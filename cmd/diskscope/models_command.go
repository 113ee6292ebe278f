package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diskscope/internal/services/modelcatalog"
)

func newModelsCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "models [local|cloud]",
		Short: "List the models the configured backend currently offers",
		Long: "Queries the configured endpoint for available model names. The lookup " +
			"is best-effort: unreachable or incompatible endpoints produce an empty " +
			"list, never an error.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"local", "cloud"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			backend := "local"
			if len(args) == 1 {
				backend = args[0]
			}

			catalog := modelcatalog.New(logger)
			var models []string
			switch backend {
			case "cloud":
				models = catalog.ListCloud(cmd.Context(), cfg.CloudLLM.Endpoint, cfg.CloudLLM.APIKey)
			default:
				models = catalog.ListLocal(cmd.Context(), cfg.LocalLLM.Endpoint, cfg.LocalLLM.APIKey)
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"backend": backend,
					"count":   len(models),
					"models":  models,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d models available from the %s backend\n", len(models), backend)
			if len(models) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(models))
			for _, model := range models {
				rows = append(rows, []string{model})
			}
			fmt.Fprintln(out, renderTable([]string{"Model"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")

	return cmd
}
