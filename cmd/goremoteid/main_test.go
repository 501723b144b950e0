package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goremoteid/internal/app"
	"goremoteid/internal/logging"
	"goremoteid/pkg/remoteid"
)

func hexMessage(t *testing.T, p remoteid.Payload) string {
	t.Helper()
	b, err := remoteid.NewMessage(p).MarshalBinary()
	require.NoError(t, err)
	return hex.EncodeToString(b)
}

// execute runs the command tree with args and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	return out.String(), err
}

// TestRootCmd tests the command tree and its flags
func TestRootCmd(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	assert.Equal(t, "goremoteid", cmd.Use)

	for _, name := range []string{"decode", "pack", "monitor"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: app.KeyLogDir, shorthand: "l", defValue: app.DefaultLogDir},
		{name: app.KeyLogRotateUTC, shorthand: "u", defValue: "true"},
		{name: app.KeyVerbose, shorthand: "v", defValue: "false"},
		{name: app.KeyConfig, defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

// TestVersionFlag tests the version display
func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: "+app.Version)
}

// TestDecodeCmd tests decoding single messages and packs
func TestDecodeCmd(t *testing.T) {
	pterm.DisableColor()

	serial, err := remoteid.NewSerialNumber("1ABC", "SN0001")
	require.NoError(t, err)
	basic := hexMessage(t, remoteid.BasicID{UAType: remoteid.UATypeHelicopter, UASID: serial})

	t.Run("Plain", func(t *testing.T) {
		out, err := execute(t, "decode", "--plain", basic)
		require.NoError(t, err)
		assert.Contains(t, out, "Message Type: BasicID\n")
		assert.Contains(t, out, "UAS ID: "+serial.String()+"\n")
	})

	t.Run("Table", func(t *testing.T) {
		out, err := execute(t, "decode", basic)
		require.NoError(t, err)
		assert.Contains(t, out, "Message Type")
		assert.Contains(t, out, "BasicID")
	})

	t.Run("Pack", func(t *testing.T) {
		packed, err := execute(t, "pack", basic, basic)
		require.NoError(t, err)

		out, err := execute(t, "decode", "--plain", strings.TrimSpace(packed))
		require.NoError(t, err)
		assert.Contains(t, out, "Message Type: Pack\n")
		assert.Contains(t, out, "[2] Message Type: BasicID\n")
	})

	t.Run("Invalid message", func(t *testing.T) {
		out, err := execute(t, "decode", "--plain", basic, "0200")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2")
		assert.Contains(t, out, "Message Type: BasicID")
		assert.Contains(t, out, "0200")
	})

	t.Run("No arguments", func(t *testing.T) {
		_, err := execute(t, "decode")
		assert.Error(t, err)
	})
}

// TestPackCmd tests building packs from the command line
func TestPackCmd(t *testing.T) {
	basic := hexMessage(t, remoteid.BasicID{UAType: remoteid.UATypeGlider, UASID: remoteid.NoUASID{}})

	out, err := execute(t, "pack", basic)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "f21901"+basic), out)

	many := make([]string, remoteid.MaxPackMessages+1)
	for i := range many {
		many[i] = basic
	}
	_, err = execute(t, append([]string{"pack"}, many...)...)
	assert.ErrorIs(t, err, remoteid.ErrInvalidInteger)
}

// TestMonitorCmd tests a monitor run over an input file
func TestMonitorCmd(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	input := filepath.Join(dir, "capture.txt")

	selfID, err := remoteid.NewSelfIDText(remoteid.DescriptionText, "inspection")
	require.NoError(t, err)
	content := hexMessage(t, selfID) + "\n" + hexMessage(t, remoteid.BasicID{UASID: remoteid.NoUASID{}}) + "\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))

	_, err = execute(t, "monitor", "--input", input, "--log-dir", logDir, "--max-log-days", "0")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(logDir, logging.FilePrefix+"*"+logging.FileSuffix))
	require.NoError(t, err)
	require.Len(t, files, 1)

	records, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(records)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "RID,SelfID,"), lines[0])
	assert.Contains(t, lines[0], "inspection")
}

// TestMonitorCmd_ConfigFile tests that a missing config file is reported
func TestMonitorCmd_ConfigFile(t *testing.T) {
	_, err := execute(t, "monitor", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}
