package capture

import "m7s.live/capture/pkg/config"

type (
	JournalConfig struct {
		Enable bool   `default:"false" desc:"record metadata of every stored frame"`
		Driver string `default:"sqlite" desc:"database driver"`
		DSN    string `default:"frames.db" yaml:"dsn" desc:"database address"`
	}
	Config struct {
		Name     string `default:"video0" desc:"device name used in logs and metrics"`
		Slots    int    `default:"4" desc:"number of capture slots"`
		SlotSize int    `default:"1048576" desc:"bytes per slot"`
		Backing  string `default:"mmap" desc:"slot memory" enum:"mmap:anonymous mapping,heap:Go heap,file:shared file mapping"`
		File     string `desc:"file mapped when backing is file"`
		LogLevel string `default:"info" desc:"log level: trace, debug, info, warn or error"`
		LogDir   string `desc:"directory for rotated log files, empty disables them"`
		LogSize  uint64 `default:"1048576" desc:"log file size in bytes before rotation"`
		LogFiles uint64 `default:"7" desc:"rotated log files kept"`
		Journal  JournalConfig
	}
)

// LoadConfig reads path (optional) over the defaults; CAPTURE_* environment
// variables take precedence over both.
func LoadConfig(path string) (conf Config, err error) {
	err = config.Load(&conf, "capture", path)
	return
}
