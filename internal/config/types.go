// Package config resolves the settings for a backup run. Three layers apply
// in order of increasing precedence: built-in defaults, the YAML config
// file, and command-line overrides. Resolution is an explicit function over
// immutable values; nothing here is global or mutated after the fact.
package config

// File mirrors the rclonebb.yaml configuration file. Every field is a
// pointer so an absent key can be told apart from an explicit zero value
// during layering.
type File struct {
	RcloneBinary  *string   `yaml:"rclone_binary"`
	LocalDir      *string   `yaml:"local_dir"`
	RemoteBucket  *string   `yaml:"remote_bucket"`
	Transfers     *int      `yaml:"transfers"`
	MinAge        *string   `yaml:"min_age"`
	ExcludeFrom   *string   `yaml:"exclude_from"`
	RcloneConfig  *string   `yaml:"rclone_config"`
	CleanupRemote *string   `yaml:"cleanup_remote"`
	LogDir        *string   `yaml:"log_dir"`
	MaxLogFiles   *int      `yaml:"max_log_files"`
	CompressLog   *bool     `yaml:"compress_log"`
	Email         *string   `yaml:"email"`
	SMTP          *SMTPFile `yaml:"smtp"`
}

// SMTPFile is the smtp block of the config file.
type SMTPFile struct {
	Host     *string `yaml:"host"`
	Port     *int    `yaml:"port"`
	Sender   *string `yaml:"sender"`
	Password *string `yaml:"password"`
}

// SMTP is the resolved submission endpoint.
type SMTP struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// Settings is the fully resolved configuration for one run.
type Settings struct {
	RcloneBinary  string
	LocalDir      string
	RemoteBucket  string
	Transfers     int
	MinAge        string
	ExcludeFrom   string
	RcloneConfig  string
	CleanupRemote string
	LogDir        string
	MaxLogFiles   int
	CompressLog   bool
	Email         string
	SMTP          SMTP
}

// Defaults returns the built-in bottom layer.
func Defaults() Settings {
	return Settings{
		RcloneBinary: "rclone",
		LocalDir:     "/mnt/data",
		RemoteBucket: "secret:/",
		Transfers:    8,
		MinAge:       "30m",
		ExcludeFrom:  "/mnt/data/rclonebb/rclone_excludes.txt",
		RcloneConfig: "/mnt/data/rclonebb/rclone.conf",
		LogDir:       "/mnt/media/rclonebb/logs",
		MaxLogFiles:  120,
		CompressLog:  true,
		SMTP: SMTP{
			Port: 587,
		},
	}
}
