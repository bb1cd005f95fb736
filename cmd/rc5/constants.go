package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cloudflare/rc5/cmd/rc5/cliutil"
	"github.com/cloudflare/rc5/cmd/rc5/flags"
	"github.com/cloudflare/rc5/logger"
	"github.com/cloudflare/rc5/magic"
	"github.com/cloudflare/rc5/metrics"
	"github.com/cloudflare/rc5/word"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func constantsCommand() *cli.Command {
	return &cli.Command{
		Name:   "constants",
		Action: cliutil.Action(deriveConstants),
		Usage:  "Derive the P and Q magic constants for one or more word sizes",
		Description: `Derives P = Odd((e-2) * 2^w) and Q = Odd((phi-1) * 2^w) for every --width.
Widths may be any multiple of 8 up to 2048 bits. With --verify the
precomputed constants used by the cipher are derived again and compared.`,
		Flags: []cli.Flag{
			altsrc.NewIntSliceFlag(&cli.IntSliceFlag{
				Name:  flags.Width,
				Usage: "Word size in bits. May be repeated",
				Value: cli.NewIntSlice(word.Widths...),
			}),
			altsrc.NewBoolFlag(&cli.BoolFlag{
				Name:  flags.Verify,
				Usage: "Fail if a derived constant differs from the precomputed table",
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:  flags.Output,
				Usage: "Output format {text, json, yaml}",
				Value: flags.OutputText,
			}),
		},
	}
}

func deriveConstants(c *cli.Context) error {
	log := logger.CreateLoggerFromContext(c, logger.EnableTerminalLog)
	widths := uniqueWidths(c.IntSlice(flags.Width))
	if len(widths) == 0 {
		return cliutil.UsageError("--%s needs at least one word size", flags.Width)
	}
	verify := c.Bool(flags.Verify)
	format := c.String(flags.Output)
	if !validOutputFormat(format) {
		return cliutil.UsageError("Unknown output format '%s', expected one of %s, %s or %s", format, flags.OutputText, flags.OutputJSON, flags.OutputYAML)
	}

	results := make([]magic.Constants, len(widths))
	timer := metrics.NewTimer(deriveDuration, time.Millisecond, "width")
	errGroup, ctx := errgroup.WithContext(c.Context)
	for i, width := range widths {
		i, width := i, width
		errGroup.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			label := strconv.Itoa(width)
			timer.Start(label)
			constants, err := magic.Derive(width)
			timer.EndAndObserve(label)
			if err != nil {
				return err
			}
			if _, known := magic.Known[width]; verify && known {
				if err := magic.CheckKnown(constants); err != nil {
					return err
				}
				log.Debug().Int("width", width).Msg("Derived constants match the precomputed table")
			}
			results[i] = constants
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return err
	}
	logDeriveDurations(log, widths)

	return renderConstants(c.App.Writer, format, results)
}

func validOutputFormat(format string) bool {
	switch format {
	case flags.OutputText, flags.OutputJSON, flags.OutputYAML:
		return true
	}
	return false
}

func uniqueWidths(widths []int) []int {
	seen := make(map[int]bool, len(widths))
	out := widths[:0:0]
	for _, w := range widths {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func logDeriveDurations(log *zerolog.Logger, widths []int) {
	for _, width := range widths {
		snapshot, err := metrics.SnapshotHistogram(deriveDuration, strconv.Itoa(width))
		if err != nil {
			log.Debug().Err(err).Int("width", width).Msg("Failed to read derive duration")
			continue
		}
		log.Debug().
			Int("width", width).
			Uint64("derivations", snapshot.Count).
			Float64("mean_ms", snapshot.Mean()).
			Msg("Derived magic constants")
	}
}

func renderConstants(w io.Writer, format string, results []magic.Constants) error {
	switch format {
	case flags.OutputText:
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "w=%d\tP=%s\tQ=%s\n", r.Width, r.P, r.Q); err != nil {
				return err
			}
		}
		return nil
	case flags.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case flags.OutputYAML:
		return yaml.NewEncoder(w).Encode(results)
	default:
		return errors.Errorf("Unknown output format '%s'", format)
	}
}
