package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Zone    string `long:"zone" description:"Target timezone for localized timestamps (default US/Central)"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ReportCommand — totals and monthly listening trend.
type ReportCommand struct {
	globals *GlobalFlags
	version string
}

// TopCommand — top tracks and artists ranked by play count.
type TopCommand struct {
	Limit int `long:"limit" description:"Number of entries per ranking" default:"0"`

	globals *GlobalFlags
	version string
}

// HabitsCommand — hour-of-day and day-of-week histograms.
type HabitsCommand struct {
	globals *GlobalFlags
	version string
}

// ArtistCommand — drill-down into a single artist.
type ArtistCommand struct {
	Name string `long:"name" description:"Artist to inspect (defaults to your most played artist)"`

	globals *GlobalFlags
	version string
}

// ServeCommand — local HTTP upload service returning the full JSON report.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`

	globals *GlobalFlags
	version string
}
