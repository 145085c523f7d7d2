package table

// Config holds configuration for downloading difficulty tables.
type Config struct {
	// MetaName is the name attribute of the meta tag pointing at the header JSON.
	MetaName string `mapstructure:"meta_name" default:"bmstable"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request. Some table hosts reject empty agents.
	UserAgent string `mapstructure:"user_agent" default:"table-pack-maker/1.0"`
	// MaxBodyMB caps the size of each downloaded document.
	MaxBodyMB int `mapstructure:"max_body_mb" default:"32"`
}

func (c Config) metaName() string {
	if c.MetaName == "" {
		return "bmstable"
	}
	return c.MetaName
}

func (c Config) maxBody() int64 {
	if c.MaxBodyMB <= 0 {
		return 32 << 20
	}
	return int64(c.MaxBodyMB) << 20
}
