package songdb

// Song maps the beatoraja "song" table. Only the columns this tool reads or checks
// are declared; the real table carries many more.
//
// beatoraja keys rows by (sha256, path), so one md5 can appear several times when
// the same chart is installed in more than one folder.
type Song struct {
	MD5      string `gorm:"column:md5;type:text" json:"md5"`
	SHA256   string `gorm:"column:sha256;type:text;primaryKey" json:"sha256"`
	Title    string `gorm:"column:title;type:text" json:"title"`
	Subtitle string `gorm:"column:subtitle;type:text" json:"subtitle"`
	Artist   string `gorm:"column:artist;type:text" json:"artist"`
	Path     string `gorm:"column:path;type:text;primaryKey" json:"path"`
	Folder   string `gorm:"column:folder;type:text" json:"folder"`
	Parent   string `gorm:"column:parent;type:text" json:"parent"`
	Level    int    `gorm:"column:level;type:integer" json:"level"`
	Mode     int    `gorm:"column:mode;type:integer" json:"mode"`
}

// TableName overrides the table name used by Song to `song`.
func (Song) TableName() string {
	return "song"
}

// RequiredColumns are the columns a matching pass cannot work without.
var RequiredColumns = []string{"md5", "path"}

// row is the projection read during matching. Path is nullable in the wild.
type row struct {
	MD5  string  `gorm:"column:md5"`
	Path *string `gorm:"column:path"`
}
