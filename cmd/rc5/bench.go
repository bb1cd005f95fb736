package main

import (
	"crypto/rand"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"github.com/cloudflare/rc5/cmd/rc5/cliutil"
	"github.com/cloudflare/rc5/cmd/rc5/flags"
	"github.com/cloudflare/rc5/logger"
	"github.com/cloudflare/rc5/metrics"
	"github.com/cloudflare/rc5/rc5"
)

const (
	defaultBenchBlocks  = 100000
	defaultBenchKeySize = 16
	benchBatchSize      = 1024
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:   "bench",
		Action: cliutil.Action(runBench),
		Usage:  "Measure encryption throughput with a random key",
		Flags: append(cipherFlags(),
			altsrc.NewIntFlag(&cli.IntFlag{
				Name:  flags.Blocks,
				Usage: "Number of blocks to encrypt",
				Value: defaultBenchBlocks,
			}),
			altsrc.NewIntFlag(&cli.IntFlag{
				Name:        flags.Workers,
				Usage:       "Number of goroutines encrypting in parallel",
				DefaultText: "GOMAXPROCS",
			}),
		),
	}
}

type benchResult struct {
	blocks    int
	workers   int
	elapsed   time.Duration
	batches   metrics.HistogramSnapshot
	processed float64
}

func runBench(c *cli.Context) error {
	log := logger.CreateLoggerFromContext(c, logger.EnableTerminalLog)
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug().Msgf(format, args...)
	}))
	defer undo()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to set GOMAXPROCS from the CPU quota")
	}

	total := c.Int(flags.Blocks)
	if total <= 0 {
		return cliutil.UsageError("--%s must be positive", flags.Blocks)
	}
	workers := c.Int(flags.Workers)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	cfg, err := cipherConfig(c, defaultBenchKeySize)
	if err != nil {
		return err
	}
	cipher, err := rc5.New(cfg, log)
	if err != nil {
		return err
	}
	key := make([]byte, cfg.KeySize)
	if _, err := rand.Read(key); err != nil {
		return err
	}

	result, err := bench(c, cipher, key, total, workers)
	if err != nil {
		return err
	}
	log.Debug().
		Float64("counted_blocks", result.processed).
		Uint64("batches", result.batches.Count).
		Msg("Benchmark finished")

	perSecond := float64(result.blocks) / result.elapsed.Seconds()
	_, err = fmt.Fprintf(c.App.Writer, "RC5-%d/%d/%d: %d blocks in %s with %d workers, %.0f blocks/s, %.1fus per batch of %d\n",
		cipher.WordSize(), cipher.Rounds(), cipher.KeySize(),
		result.blocks, result.elapsed.Round(time.Microsecond), result.workers, perSecond,
		result.batches.Mean(), benchBatchSize)
	return err
}

func bench(c *cli.Context, cipher rc5.Cipher, key []byte, total, workers int) (benchResult, error) {
	blockCipher, err := cipher.Block(key)
	if err != nil {
		return benchResult{}, err
	}
	label := strconv.Itoa(cipher.WordSize())
	blocksLabels := map[string]string{"operation": "encrypt", "word_size": label}
	timer := metrics.NewTimer(benchBatchDuration, time.Microsecond, "word_size")

	// the counter does not exist until the first block of this width
	before, _ := metrics.CounterValue(prometheus.DefaultGatherer, blocksMetricName, blocksLabels)
	batchesBefore, err := metrics.SnapshotHistogram(benchBatchDuration, label)
	if err != nil {
		return benchResult{}, err
	}

	start := time.Now()
	errGroup, ctx := errgroup.WithContext(c.Context)
	for w := 0; w < workers; w++ {
		n := total / workers
		if w < total%workers {
			n++
		}
		errGroup.Go(func() error {
			buf := make([]byte, blockCipher.BlockSize())
			for done := 0; done < n; {
				if err := ctx.Err(); err != nil {
					return err
				}
				batch := n - done
				if batch > benchBatchSize {
					batch = benchBatchSize
				}
				batchStart := time.Now()
				for i := 0; i < batch; i++ {
					blockCipher.Encrypt(buf, buf)
				}
				timer.Observe(metrics.Latency(batchStart, time.Now()), label)
				done += batch
			}
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return benchResult{}, err
	}
	elapsed := time.Since(start)

	after, err := metrics.CounterValue(prometheus.DefaultGatherer, blocksMetricName, blocksLabels)
	if err != nil {
		return benchResult{}, err
	}
	batches, err := metrics.SnapshotHistogram(benchBatchDuration, label)
	if err != nil {
		return benchResult{}, err
	}
	batches.Count -= batchesBefore.Count
	batches.Sum -= batchesBefore.Sum

	return benchResult{
		blocks:    total,
		workers:   workers,
		elapsed:   elapsed,
		batches:   batches,
		processed: after - before,
	}, nil
}
