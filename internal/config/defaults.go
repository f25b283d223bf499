package config

const (
	defaultLogDir             = "~/.local/share/depthsync/logs"
	defaultToleranceSeconds   = 10
	defaultUnits              = UnitsImperial
	defaultTimezone           = "+00:00"
	defaultProgressInterval   = 100
	defaultExivBinary         = "exiv2"
	defaultExivTimeoutSeconds = 30
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Unit system names accepted by sync.units.
const (
	UnitsImperial = "imperial"
	UnitsMetric   = "metric"
)

// DefaultTimestampTags lists the EXIF keys consulted for a photo's capture
// time when sync.timestamp_tags is empty.
var DefaultTimestampTags = []string{
	"Exif.Image.DateTime",
	"Exif.Photo.DateTimeOriginal",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Sync: Sync{
			ToleranceSeconds: defaultToleranceSeconds,
			Units:            defaultUnits,
			Timezone:         defaultTimezone,
			TimestampTags:    append([]string(nil), DefaultTimestampTags...),
			ProgressInterval: defaultProgressInterval,
		},
		Exiv2: Exiv2{
			Binary:         defaultExivBinary,
			TimeoutSeconds: defaultExivTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
