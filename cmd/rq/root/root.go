package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"readquest/internal/ui"
)

const Version = "0.1.0"

type globalFlags struct {
	dbPath      string
	displayName string
	levelPolicy string
	verbose     bool
}

var flags globalFlags

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rq",
		Short:         "readquest: turn your reading into an RPG",
		Long:          "readquest is a local-first CLI/TUI reading tracker. Books are quests, pages become XP and mana, and four attributes grow with how you read.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "", "Database path (default ~/.readquest.db, env READQUEST_DB)")
	pf.StringVar(&flags.displayName, "name", "", "Hero name used on first run (env READQUEST_DISPLAY_NAME)")
	pf.StringVar(&flags.levelPolicy, "level-policy", "", "Level policy: static|curve (env READQUEST_LEVEL_POLICY)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log diagnostics to stderr (env READQUEST_VERBOSE)")

	cmd.AddCommand(
		newAddCmd(),
		newBooksCmd(),
		newReadCmd(),
		newStatusCmd(),
		newShopCmd(),
		newBuyCmd(),
		newBadgesCmd(),
		newCalendarCmd(),
		newShardCmd(),
		newResetCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
