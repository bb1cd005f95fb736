package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/cloudflare/rc5/cmd/rc5/cliutil"
	"github.com/cloudflare/rc5/cmd/rc5/flags"
	"github.com/cloudflare/rc5/config"
	"github.com/cloudflare/rc5/logger"
	"github.com/cloudflare/rc5/rc5"
)

const (
	defaultWordSize = 32
	defaultRounds   = 12
)

func cipherFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    flags.Profile,
			Usage:   "Name of a cipher profile from the configuration file. Flags override its values.",
			EnvVars: []string{"RC5_PROFILE"},
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  flags.WordSize,
			Usage: "Word size in bits {8, 16, 32, 64, 128}",
			Value: defaultWordSize,
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  flags.Rounds,
			Usage: "Number of rounds, 1 to 255",
			Value: defaultRounds,
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:        flags.KeySize,
			Usage:       "Key size in bytes, 1 to 255",
			DefaultText: "length of the key",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  flags.P,
			Usage: "Override the P magic constant, as big-endian hex",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  flags.Q,
			Usage: "Override the Q magic constant, as big-endian hex",
		}),
	}
}

func blockFlags() []cli.Flag {
	return append(cipherFlags(),
		&cli.StringFlag{
			Name:     flags.Key,
			Usage:    "Secret key as hex",
			EnvVars:  []string{"RC5_KEY"},
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:     flags.Block,
			Usage:    "Block to transform as hex, exactly two words long. May be repeated",
			Required: true,
		},
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:  flags.CacheSchedules,
			Usage: "Keep the expanded key between blocks",
			Value: true,
		}),
	)
}

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "encrypt",
		Action:    cliutil.Action(transformBlocks(rc5.Cipher.Encrypt)),
		Usage:     "Encrypt blocks",
		UsageText: "rc5 encrypt --key HEX --block HEX [--block HEX...] [command options]",
		Flags:     blockFlags(),
	}
}

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "decrypt",
		Action:    cliutil.Action(transformBlocks(rc5.Cipher.Decrypt)),
		Usage:     "Decrypt blocks",
		UsageText: "rc5 decrypt --key HEX --block HEX [--block HEX...] [command options]",
		Flags:     blockFlags(),
	}
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:      "schedule",
		Action:    cliutil.Action(printSchedule),
		Usage:     "Print the round keys expanded from a key",
		UsageText: "rc5 schedule --key HEX [command options]",
		Flags: append(cipherFlags(), &cli.StringFlag{
			Name:     flags.Key,
			Usage:    "Secret key as hex",
			EnvVars:  []string{"RC5_KEY"},
			Required: true,
		}),
	}
}

func decodeHex(flag, value string) ([]byte, error) {
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, cliutil.UsageError("--%s is not valid hex: %v", flag, err)
	}
	return b, nil
}

// cipherConfig resolves the cipher parameters. Flags given on the command
// line or as flat keys in the config file win over the selected profile,
// which wins over the flag defaults.
func cipherConfig(c *cli.Context, keyLen int) (rc5.Config, error) {
	cfg := rc5.Config{
		WordSize:       c.Int(flags.WordSize),
		Rounds:         c.Int(flags.Rounds),
		KeySize:        c.Int(flags.KeySize),
		P:              c.String(flags.P),
		Q:              c.String(flags.Q),
		CacheSchedules: c.Bool(flags.CacheSchedules),
	}
	if name := c.String(flags.Profile); name != "" {
		profile, err := config.GetConfiguration().FindProfile(name)
		if err != nil {
			return rc5.Config{}, err
		}
		base := profile.Config
		overrideInt(c, flags.WordSize, &base.WordSize)
		overrideInt(c, flags.Rounds, &base.Rounds)
		overrideInt(c, flags.KeySize, &base.KeySize)
		overrideString(c, flags.P, &base.P)
		overrideString(c, flags.Q, &base.Q)
		if c.IsSet(flags.CacheSchedules) {
			base.CacheSchedules = cfg.CacheSchedules
		}
		cfg = base
	}
	if cfg.KeySize == 0 {
		cfg.KeySize = keyLen
	}
	return cfg, nil
}

func overrideInt(c *cli.Context, name string, dst *int) {
	if c.IsSet(name) {
		*dst = c.Int(name)
	}
}

func overrideString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func transformBlocks(transform func(rc5.Cipher, []byte, []byte) ([]byte, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		log := logger.CreateLoggerFromContext(c, logger.EnableTerminalLog)
		key, err := decodeHex(flags.Key, c.String(flags.Key))
		if err != nil {
			return err
		}
		cfg, err := cipherConfig(c, len(key))
		if err != nil {
			return err
		}
		cipher, err := rc5.New(cfg, log)
		if err != nil {
			return err
		}
		for _, value := range c.StringSlice(flags.Block) {
			block, err := decodeHex(flags.Block, value)
			if err != nil {
				return err
			}
			out, err := transform(cipher, key, block)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(c.App.Writer, "%X\n", out); err != nil {
				return err
			}
		}
		return nil
	}
}

func printSchedule(c *cli.Context) error {
	log := logger.CreateLoggerFromContext(c, logger.EnableTerminalLog)
	key, err := decodeHex(flags.Key, c.String(flags.Key))
	if err != nil {
		return err
	}
	cfg, err := cipherConfig(c, len(key))
	if err != nil {
		return err
	}
	cipher, err := rc5.New(cfg, log)
	if err != nil {
		return err
	}
	roundKeys, err := cipher.RoundKeyStrings(key)
	if err != nil {
		return err
	}
	constants := cipher.Constants()
	fmt.Fprintf(c.App.Writer, "RC5-%d/%d/%d P=%s Q=%s\n", cipher.WordSize(), cipher.Rounds(), cipher.KeySize(), constants.P, constants.Q)
	for i, k := range roundKeys {
		fmt.Fprintf(c.App.Writer, "S[%d] = %s\n", i, k)
	}
	return nil
}
