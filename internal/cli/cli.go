package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Report *ReportCommand
	Top    *TopCommand
	Habits *HabitsCommand
	Artist *ArtistCommand
	Serve  *ServeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "replay"
	parser.LongDescription = "Local analyzer for personal music streaming-history exports: rankings, trends, and listening habits."

	cmds := &commands{
		Report: &ReportCommand{globals: &globals, version: version},
		Top:    &TopCommand{globals: &globals, version: version},
		Habits: &HabitsCommand{globals: &globals, version: version},
		Artist: &ArtistCommand{globals: &globals, version: version},
		Serve:  &ServeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("report", "Show listening overview", "Show total hours, unique tracks/artists, and the monthly listening trend.", cmds.Report)
	parser.AddCommand("top", "Show top tracks and artists", "Show the most played tracks and artists, ranked by play count.", cmds.Top)
	parser.AddCommand("habits", "Show listening-time histograms", "Show plays by hour of day and by day of week.", cmds.Habits)
	parser.AddCommand("artist", "Deep dive into one artist", "Show top tracks and listening hours for a single artist (top artist by default).", cmds.Artist)
	parser.AddCommand("serve", "Start the local upload service", "Start a local HTTP service that accepts export uploads and returns the full report as JSON.", cmds.Serve)

	return parser, &globals, cmds
}

// Run is the main entry point for the replay CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("replay %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
