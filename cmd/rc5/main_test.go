package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/cloudflare/rc5/cmd/rc5/cliutil"
	"github.com/cloudflare/rc5/magic"
	"github.com/cloudflare/rc5/rc5"
)

func run(t *testing.T, args ...string) (string, error) {
	app := newApp(cliutil.GetBuildInfo("test", "2026-01-01", "DEV"))
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.ExitErrHandler = func(*cli.Context, error) {}
	args = append([]string{"rc5", "--config", "", "--loglevel", "error"}, args...)
	err := app.Run(args)
	return out.String(), err
}

func TestEncryptDecryptKnownAnswer(t *testing.T) {
	for _, v := range rc5.Vectors {
		out, err := run(t, "encrypt", "--key", v.Key, "--block", v.Plaintext)
		require.NoError(t, err)
		assert.Equal(t, v.Ciphertext+"\n", out)

		out, err = run(t, "decrypt", "--key", "0x"+v.Key, "--block", v.Ciphertext)
		require.NoError(t, err)
		assert.Equal(t, v.Plaintext+"\n", out)
	}
}

func TestEncryptSeveralBlocks(t *testing.T) {
	args := []string{"--word-size", "16", "--rounds", "16", "--key", "0011223344556677"}
	out, err := run(t, append([]string{"encrypt", "--block", "00010203", "--block", "FFFFFFFF"}, args...)...)
	require.NoError(t, err)
	ciphertexts := strings.Fields(out)
	require.Len(t, ciphertexts, 2)

	out, err = run(t, append([]string{"decrypt", "--block", ciphertexts[0], "--block", ciphertexts[1]}, args...)...)
	require.NoError(t, err)
	assert.Equal(t, "00010203\nFFFFFFFF\n", out)
}

func TestEncryptErrors(t *testing.T) {
	_, err := run(t, "encrypt", "--key-size", "8", "--key", "000102030405060708090A0B0C0D0E0F", "--block", "0011223344556677")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key length 16, expected 8")

	_, err = run(t, "encrypt", "--key", "000102030405060708090A0B0C0D0E0F", "--block", "00112233")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid block length 4, expected 8")

	_, err = run(t, "encrypt", "--word-size", "24", "--key", "00", "--block", "000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported word size")

	_, err = run(t, "encrypt", "--key", "not hex", "--block", "00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "See 'rc5 encrypt --help'")
}

func TestSchedule(t *testing.T) {
	out, err := run(t, "schedule", "--word-size", "8", "--rounds", "3", "--key", "0102")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+2*(3+1))
	assert.Equal(t, "RC5-8/3/2 P=B7 Q=9F", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "S[0] = "))
}

func TestConstants(t *testing.T) {
	out, err := run(t, "constants", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "w=32\tP=B7E15163\tQ=9E3779B9\n")
	assert.Equal(t, 5, strings.Count(out, "\n"))

	out, err = run(t, "constants", "--width", "64", "--width", "256", "--width", "64", "--output", "json")
	require.NoError(t, err)
	var results []magic.Constants
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, magic.Known[64], results[0])
	assert.Equal(t, 256, results[1].Width)
	assert.Len(t, results[1].P, 64)

	out, err = run(t, "constants", "--width", "16", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "p: B7E1")

	_, err = run(t, "constants", "--width", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported word size")

	_, err = run(t, "constants", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown output format 'xml'")
	assert.Contains(t, err.Error(), "See 'rc5 constants --help'")

	// the format is rejected before any width is looked at
	_, err = run(t, "constants", "--width", "12", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown output format")
}

func TestVectors(t *testing.T) {
	out, err := run(t, "vectors")
	require.NoError(t, err)
	for _, v := range rc5.Vectors {
		assert.Contains(t, out, "ok\t"+v.Name+"\n")
	}
}

func TestBench(t *testing.T) {
	out, err := run(t, "bench", "--word-size", "64", "--blocks", "3000", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "RC5-64/12/16: 3000 blocks")
	assert.Contains(t, out, "with 3 workers")

	_, err = run(t, "bench", "--blocks", "0")
	assert.Error(t, err)
}

func TestProfileFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
profiles:
 - name: small
   word-size: 16
   rounds: 8
   key-size: 4
`), 0600))

	app := newApp(cliutil.GetBuildInfo("test", "2026-01-01", "DEV"))
	var out bytes.Buffer
	app.Writer = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run([]string{"rc5", "--config", path, "--loglevel", "error", "encrypt", "--profile", "small", "--key", "01020304", "--block", "00112233"})
	require.NoError(t, err)

	c, err := rc5.New(rc5.Config{WordSize: 16, Rounds: 8, KeySize: 4}, nil)
	require.NoError(t, err)
	want, err := c.Encrypt([]byte{1, 2, 3, 4}, []byte{0x00, 0x11, 0x22, 0x33})
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(hex.EncodeToString(want))+"\n", out.String())

	_, err = run(t, "encrypt", "--profile", "missing", "--key", "01", "--block", "0000")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "rc5 version DEV (built 2026-01-01 with test)"))
}
