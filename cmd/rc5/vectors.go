package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/cloudflare/rc5/cmd/rc5/cliutil"
	"github.com/cloudflare/rc5/logger"
	"github.com/cloudflare/rc5/rc5"
)

func vectorsCommand() *cli.Command {
	return &cli.Command{
		Name:   "vectors",
		Action: cliutil.Action(checkVectors),
		Usage:  "Run the published known-answer tests",
	}
}

func checkVectors(c *cli.Context) error {
	log := logger.CreateLoggerFromContext(c, logger.EnableTerminalLog)
	failed := 0
	for _, v := range rc5.Vectors {
		if err := v.Check(log); err != nil {
			failed++
			log.Error().Err(err).Str("vector", v.Name).Msg("Known-answer test failed")
			fmt.Fprintf(c.App.Writer, "FAIL\t%s\n", v.Name)
			continue
		}
		fmt.Fprintf(c.App.Writer, "ok\t%s\n", v.Name)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d known-answer tests failed", failed, len(rc5.Vectors))
	}
	return nil
}
