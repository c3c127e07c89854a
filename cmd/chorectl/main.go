// Command chorectl inspects and edits a household chore database directly,
// without going through the HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/config"
	"github.com/henleyisabel12/teaco-chores/store/sqlite"
)

type options struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "chorectl",
		Short:         "chorectl - household chore schedule CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "chores.toml", "Config file path")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides config)")

	root.AddCommand(
		newImportCmd(opts),
		newExportCmd(opts),
		newScenarioCmd(opts),
		newAgendaCmd(opts),
		newUpcomingCmd(opts),
		newDoneCmd(opts),
	)
	return root
}

// open loads config and the store behind a service. The caller closes the store.
func (o *options) open() (*chores.Service, *sqlite.Store, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.dbPath != "" {
		cfg.Storage.Path = o.dbPath
	}
	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	return chores.NewService(store, cfg.Engine()), store, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
