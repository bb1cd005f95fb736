package cliutil

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/cloudflare/rc5/config"
	"github.com/cloudflare/rc5/logger"
)

const errorExitCode = 1

type usageError string

func (ue usageError) Error() string {
	return string(ue)
}

// UsageError is returned when a command was invoked with bad arguments. The
// error handler points the user to the command's help.
func UsageError(format string, args ...interface{}) error {
	if len(args) == 0 {
		return usageError(format)
	}
	return usageError(fmt.Sprintf(format, args...))
}

// Action wraps actionFunc so that values from the config file are applied to
// flags not given on the command line, and errors map to exit codes.
func Action(actionFunc cli.ActionFunc) cli.ActionFunc {
	return WithErrorHandler(func(c *cli.Context) error {
		if err := setFlagsFromConfigFile(c); err != nil {
			return err
		}
		return actionFunc(c)
	})
}

// WithErrorHandler ensures exit with error code if actionFunc returns an error
func WithErrorHandler(actionFunc cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		err := actionFunc(ctx)
		if err != nil {
			if _, ok := err.(usageError); ok {
				command := "rc5"
				if ctx.Command != nil && ctx.Command.Name != "" {
					command += " " + ctx.Command.Name
				}
				msg := fmt.Sprintf("%s\nSee '%s --help'.", err.Error(), command)
				err = cli.Exit(msg, -1)
			} else if _, ok := err.(cli.ExitCoder); !ok {
				err = cli.Exit(err.Error(), errorExitCode)
			}
		}
		return err
	}
}

func setFlagsFromConfigFile(c *cli.Context) error {
	log := logger.CreateLoggerFromContext(c, logger.EnableTerminalLog)
	inputSource, warnings, err := config.ReadConfigFile(c, log)
	if err != nil {
		if err == config.ErrNoConfigFile {
			return nil
		}
		return cli.Exit(err, errorExitCode)
	}
	if warnings != "" {
		log.Warn().Msgf("Your configuration file %s has problems: %s", inputSource.Source(), warnings)
	}

	if err := applyConfig(c, inputSource); err != nil {
		return cli.Exit(err, errorExitCode)
	}
	return nil
}

func applyConfig(c *cli.Context, inputSource altsrc.InputSourceContext) error {
	for _, context := range c.Lineage() {
		if context.Command == nil {
			// we've reached the placeholder root context not associated with the app
			break
		}
		targetFlags := context.Command.Flags
		if context.Command.Name == "" {
			// commands that define child subcommands are executed as if they were an app
			targetFlags = c.App.Flags
		}
		if err := altsrc.ApplyInputSourceValues(context, inputSource, targetFlags); err != nil {
			return err
		}
	}
	return nil
}
