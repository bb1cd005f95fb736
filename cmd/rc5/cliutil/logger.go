package cliutil

import (
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/cloudflare/rc5/cmd/rc5/flags"
)

var debugLevelWarning = "At debug level rc5 logs the magic constants and parameters of every cipher it builds."

func ConfigureLoggingFlags(shouldHide bool) []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    flags.LogLevel,
			Value:   "info",
			Usage:   "Application logging level {debug, info, warn, error, fatal}. " + debugLevelWarning,
			EnvVars: []string{"RC5_LOGLEVEL"},
			Hidden:  shouldHide,
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    flags.LogFile,
			Usage:   "Save application log to this file.",
			EnvVars: []string{"RC5_LOGFILE"},
			Hidden:  shouldHide,
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    flags.LogDirectory,
			Usage:   "Save application log to a rolling log in this directory.",
			EnvVars: []string{"RC5_LOGDIRECTORY"},
			Hidden:  shouldHide,
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    flags.LogFormat,
			Usage:   "Output format for the logs (default, json)",
			Value:   flags.LogFormatValueDefault,
			EnvVars: []string{"RC5_LOG_FORMAT"},
			Hidden:  shouldHide,
		}),
	}
}
