package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bodocord/bodocord/bcdice"
)

var (
	filterExpr string
	preset     string
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the BCDice-API server versions and administrator",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

// systemsCmd represents the systems command
var systemsCmd = &cobra.Command{
	Use:   "systems [id]",
	Short: "List game systems or show one game system",
	Long: `Without arguments every game system of the server is listed. The list can be
narrowed with a filter expression or a preset from the config, for example:

  bodocord systems --filter 'name:"クトゥルフ"'
  bodocord systems --filter 'startsWithText(ID, "Sword") or matchRegex(Name, "^ソード")'
  bodocord systems --preset cthulhu`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSystems,
}

// rollCmd represents the roll command
var rollCmd = &cobra.Command{
	Use:   "roll <system> <command>",
	Short: "Roll a BCDice command",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoll,
}

// tableCmd represents the table command
var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Roll an original table read from a file",
	Long: `Roll an original table. The file holds the title on the first line, the dice
command on the second and one item per following line. Use - to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(systemsCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(tableCmd)

	systemsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	systemsCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	systemsCmd.MarkFlagsMutuallyExclusive("filter", "preset")
}

func runInfo(cmd *cobra.Command, args []string) error {
	var (
		v     *bcdice.APIVersion
		admin *bcdice.APIAdmin
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		v, err = bcdiceClient.GetAPIVersion(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		admin, err = bcdiceClient.GetAPIAdmin(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to get server information: %w", err)
	}

	printInfo(cmd.OutOrStdout(), bcdiceClient.BaseURL(), v, admin)
	return nil
}

func runSystems(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		system, err := bcdiceClient.GetGameSystem(ctx, args[0])
		if err != nil {
			return describeError(err)
		}
		printGameSystem(out, system)
		return nil
	}

	systems, err := bcdiceClient.GetAvailableGameSystems(ctx)
	if err != nil {
		return describeError(err)
	}

	if filterExpr != "" || preset != "" {
		filters, err := newFilterManager(cfg.Filter.Presets)
		if err != nil {
			return fmt.Errorf("failed to load filter presets: %w", err)
		}
		if preset != "" {
			logger.Info().Str("preset", preset).Msg("Filtering game systems")
			systems, err = filters.ApplyPreset(ctx, preset, systems, 0)
		} else {
			logger.Info().Str("filter", filterExpr).Msg("Filtering game systems")
			systems, err = filters.Apply(ctx, filterExpr, systems, 0)
		}
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	printSystems(out, systems)
	return nil
}

func runRoll(cmd *cobra.Command, args []string) error {
	results, err := bcdiceClient.DiceRoll(cmd.Context(), args[0], args[1])
	if err != nil {
		return describeError(err)
	}
	printRoll(cmd.OutOrStdout(), results)
	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open table: %w", err)
		}
		defer f.Close()
		in = f
	}

	table, err := bcdice.ParseOriginalTable(in)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("title", table.Title).
		Str("command", table.Command).
		Int("items", len(table.Items)).
		Msg("Rolling original table")

	results, err := bcdiceClient.RunOriginalTable(cmd.Context(), table)
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), results.Text)
	return nil
}

// describeError puts the user-facing message of a classified error first
func describeError(err error) error {
	switch bcdice.CodeOf(err) {
	case bcdice.CodeUnsupportedSystem:
		return fmt.Errorf("unsupported game system, check the ID with 'bodocord systems': %w", err)
	case bcdice.CodeUnsupportedCommand:
		return fmt.Errorf("unsupported command for this game system: %w", err)
	case bcdice.CodeUnsupportedTable:
		return fmt.Errorf("the server could not parse the table: %w", err)
	default:
		return err
	}
}

func printInfo(w io.Writer, serverURL string, v *bcdice.APIVersion, admin *bcdice.APIAdmin) {
	fmt.Fprintf(w, "BCDice-API v%s (BCDice v%s)\n", v.API, v.BCDice)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Server URL: %s\n", serverURL)
	fmt.Fprintf(w, "Admin Name: %s\n", orDash(admin.Name))
	fmt.Fprintf(w, "Site:       %s\n", orDash(admin.URL))
	fmt.Fprintf(w, "E-Mail:     %s\n", orDash(admin.Email))
}

func printGameSystem(w io.Writer, system *bcdice.GameSystem) {
	fmt.Fprintf(w, "%s (%s)\n", system.Name, system.ID)
	fmt.Fprintf(w, "Sort key: %s\n", system.SortKey)
	fmt.Fprintf(w, "Command pattern: %s\n", system.CommandPattern)
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintln(w, strings.TrimRight(system.HelpMessage, "\n"))
}

func printSystems(w io.Writer, systems []bcdice.AvailableGameSystem) {
	if len(systems) == 0 {
		fmt.Fprintln(w, "No game systems found.")
		return
	}

	fmt.Fprintf(w, "Found %d game systems:\n", len(systems))
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, system := range systems {
		fmt.Fprintf(w, "%-30s %s\n", system.ID, system.Name)
	}
}

func printRoll(w io.Writer, results *bcdice.DiceRollResults) {
	fmt.Fprintln(w, results.Text)

	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{results.Secret, "SECRET"},
		{results.Success, "SUCCESS"},
		{results.Failure, "FAILURE"},
		{results.Critical, "CRITICAL"},
		{results.Fumble, "FUMBLE"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	if len(flags) > 0 {
		fmt.Fprintf(w, "[%s]\n", strings.Join(flags, "] ["))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
