package pack

// Config holds configuration for matching and building packs.
type Config struct {
	// Destination is the directory new packs are created in.
	Destination string `mapstructure:"destination" default:"packs"`
	// Name is appended to the creation timestamp to form the pack directory name.
	Name string `mapstructure:"name" default:"pack"`
	// BatchSize is the number of hashes per song database query (max 900).
	BatchSize int `mapstructure:"batch_size" default:"900"`
	// SongsRoot resolves relative song paths. Empty means the song database's directory.
	SongsRoot string `mapstructure:"songs_root" default:""`
}
