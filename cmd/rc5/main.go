package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/cloudflare/rc5/cmd/rc5/cliutil"
	"github.com/cloudflare/rc5/cmd/rc5/flags"
	"github.com/cloudflare/rc5/config"
	"github.com/cloudflare/rc5/logger"
	"github.com/cloudflare/rc5/metrics"
)

const (
	versionText = "Print the version"
)

var (
	Version   = "DEV"
	BuildTime = "unknown"
	BuildType = ""
)

func main() {
	metrics.RegisterBuildInfo(prometheus.DefaultRegisterer, BuildType, BuildTime, Version)
	bInfo := cliutil.GetBuildInfo(BuildType, BuildTime, Version)

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v", "V"},
		Usage:   versionText,
	}

	runApp(newApp(bInfo))
}

func newApp(bInfo *cliutil.BuildInfo) *cli.App {
	app := &cli.App{}
	app.Name = "rc5"
	app.Usage = "RC5 block cipher with selectable word size, rounds and key size"
	app.UsageText = "rc5 [global options] [command] [command options]"
	app.Copyright = fmt.Sprintf("(c) %d Cloudflare Inc.", time.Now().Year())
	app.Version = fmt.Sprintf("%s (built %s%s)", bInfo.Version(), bInfo.BuildTime, bInfo.GetBuildTypeMsg())
	app.Description = `rc5 encrypts and decrypts single RC5 blocks, derives the P and Q magic
	constants for any word size, checks the published known-answer vectors and
	benchmarks the cipher.`
	app.Flags = globalFlags()
	app.Commands = commands(bInfo)
	return app
}

func globalFlags() []cli.Flag {
	globals := []cli.Flag{
		&cli.StringFlag{
			Name:    flags.Config,
			Usage:   "Specifies a config file in YAML format.",
			Value:   config.FindDefaultConfigPath(),
			EnvVars: []string{"RC5_CONFIG"},
		},
	}
	return append(globals, cliutil.ConfigureLoggingFlags(false)...)
}

func commands(bInfo *cliutil.BuildInfo) []*cli.Command {
	return []*cli.Command{
		encryptCommand(),
		decryptCommand(),
		scheduleCommand(),
		constantsCommand(),
		vectorsCommand(),
		benchCommand(),
		{
			Name: "version",
			Action: cliutil.WithErrorHandler(func(c *cli.Context) error {
				_, err := fmt.Fprintln(c.App.Writer, bInfo.String())
				return err
			}),
			Usage:       versionText,
			Description: versionText,
		},
	}
}

func runApp(app *cli.App) {
	if err := app.Run(os.Args); err != nil {
		logger.Create(nil).Error().Err(err).Msg("rc5 failed")
		os.Exit(1)
	}
}
