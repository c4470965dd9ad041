package config

const (
	defaultStateDir   = "~/.local/share/radar/state"
	defaultDigestDir  = "~/.local/share/radar"
	defaultArchiveDir = "~/.local/share/radar/archive"
	defaultLogDir     = "~/.local/share/radar/logs"

	defaultLookbackDays        = 7
	defaultSourceWorkers       = 3
	defaultRequestPacingMS     = 500
	defaultMinRepoStars        = 10
	defaultMinHFLikes          = 5
	defaultMinHFDownloads      = 50
	defaultMinCivitaiDownloads = 200
	defaultMinCivitaiRating    = 4.0

	defaultNotionBaseURL        = "https://api.notion.com/v1"
	defaultNotionRequestTimeout = 15

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:   defaultStateDir,
			DigestDir:  defaultDigestDir,
			ArchiveDir: defaultArchiveDir,
			LogDir:     defaultLogDir,
		},
		Monitor: Monitor{
			LookbackDays:        defaultLookbackDays,
			SourceWorkers:       defaultSourceWorkers,
			RequestPacingMS:     defaultRequestPacingMS,
			MinRepoStars:        defaultMinRepoStars,
			MinHFLikes:          defaultMinHFLikes,
			MinHFDownloads:      defaultMinHFDownloads,
			MinCivitaiDownloads: defaultMinCivitaiDownloads,
			MinCivitaiRating:    defaultMinCivitaiRating,
		},
		Notion: Notion{
			BaseURL:        defaultNotionBaseURL,
			RequestTimeout: defaultNotionRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
