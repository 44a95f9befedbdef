package capture

import (
	"io"
	"log/slog"

	"github.com/alchemy/rotoslog"
	"github.com/phsym/console-slog"
	"m7s.live/capture/pkg"
)

const logTimeFormat = "2006-01-02 15:04:05.000"

// NewLogger writes to w and, when conf.LogDir is set, to rotated files
// in that directory.
func NewLogger(conf Config, w io.Writer) (*slog.Logger, error) {
	level := pkg.ParseLevel(conf.LogLevel)
	handler := pkg.NewMultiLogHandler(level, console.NewHandler(w, &console.HandlerOptions{Level: level, TimeFormat: logTimeFormat}))
	if conf.LogDir != "" {
		builder := func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
			return console.NewHandler(w, &console.HandlerOptions{NoColor: true, Level: level, TimeFormat: logTimeFormat})
		}
		rotating, err := rotoslog.NewHandler(rotoslog.LogHandlerBuilder(builder), rotoslog.LogDir(conf.LogDir), rotoslog.MaxFileSize(conf.LogSize), rotoslog.MaxRotatedFiles(conf.LogFiles))
		if err != nil {
			return nil, err
		}
		handler.Add(rotating)
	}
	return slog.New(handler).With("device", conf.Name), nil
}
