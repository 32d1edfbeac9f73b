package feed

// Configuration types for watched feeds. One YAML file per feed in the
// feeds directory; the feed name is derived from the filename.

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxEpisodes     int  `yaml:"max_episodes"`
	Timeout         int  `yaml:"timeout"` // seconds

	// AllowMissingGuid keeps episodes that lack a resolvable identifier
	// instead of dropping them during parsing.
	AllowMissingGuid bool `yaml:"allow_missing_guid"`
}
