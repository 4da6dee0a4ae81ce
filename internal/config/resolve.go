package config

// Overrides carries command-line values. Only non-nil fields were set
// explicitly by the user and take precedence over the file layer.
type Overrides struct {
	RcloneBinary  *string
	LocalDir      *string
	RemoteBucket  *string
	Transfers     *int
	MinAge        *string
	ExcludeFrom   *string
	RcloneConfig  *string
	CleanupRemote *string
	LogDir        *string
	MaxLogFiles   *int
	CompressLog   *bool
	Email         *string
}

// Resolve layers defaults, the config file (nil = absent), and command-line
// overrides, highest precedence last, into one immutable Settings value.
func Resolve(f *File, o Overrides) Settings {
	s := Defaults()
	applyFile(&s, f)
	applyOverrides(&s, o)
	return s
}

func applyFile(s *Settings, f *File) {
	if f == nil {
		return
	}
	setString(&s.RcloneBinary, f.RcloneBinary)
	setString(&s.LocalDir, f.LocalDir)
	setString(&s.RemoteBucket, f.RemoteBucket)
	setInt(&s.Transfers, f.Transfers)
	setString(&s.MinAge, f.MinAge)
	setString(&s.ExcludeFrom, f.ExcludeFrom)
	setString(&s.RcloneConfig, f.RcloneConfig)
	setString(&s.CleanupRemote, f.CleanupRemote)
	setString(&s.LogDir, f.LogDir)
	setInt(&s.MaxLogFiles, f.MaxLogFiles)
	setBool(&s.CompressLog, f.CompressLog)
	setString(&s.Email, f.Email)

	if f.SMTP != nil {
		setString(&s.SMTP.Host, f.SMTP.Host)
		setInt(&s.SMTP.Port, f.SMTP.Port)
		setString(&s.SMTP.Sender, f.SMTP.Sender)
		setString(&s.SMTP.Password, f.SMTP.Password)
	}
}

func applyOverrides(s *Settings, o Overrides) {
	setString(&s.RcloneBinary, o.RcloneBinary)
	setString(&s.LocalDir, o.LocalDir)
	setString(&s.RemoteBucket, o.RemoteBucket)
	setInt(&s.Transfers, o.Transfers)
	setString(&s.MinAge, o.MinAge)
	setString(&s.ExcludeFrom, o.ExcludeFrom)
	setString(&s.RcloneConfig, o.RcloneConfig)
	setString(&s.CleanupRemote, o.CleanupRemote)
	setString(&s.LogDir, o.LogDir)
	setInt(&s.MaxLogFiles, o.MaxLogFiles)
	setBool(&s.CompressLog, o.CompressLog)
	setString(&s.Email, o.Email)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
