package database

// Config holds configuration for opening the song database.
//
// With the sqlite driver the database is a file whose path is supplied per run
// (beatoraja's songdata.db); Name is only used as a fallback. With the mysql driver
// the song table lives on a server and Name is the schema that holds it.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Name is the sqlite file path or the mysql database name.
	Name string `mapstructure:"name" default:"songdata.db"`
	// ReadOnly opens sqlite files without write access.
	ReadOnly bool `mapstructure:"read_only" default:"true"`
	// Host is the mysql host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the mysql port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the mysql user.
	User string `mapstructure:"user" default:"root"`
	// Password is the mysql password.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// IsSQLite reports whether the configuration targets a sqlite file.
func (c Config) IsSQLite() bool {
	return c.Driver == "" || c.Driver == DriverSQLite
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)
