// Package cmd wires up the rgbseq command tree.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"rgbseq/config"
	"rgbseq/debug"
	"rgbseq/fixture"
	"rgbseq/rgb"
)

var (
	rigPath   string
	groupName string
	debugLog  bool
)

var rootCmd = &cobra.Command{
	Use:   "rgbseq",
	Short: "An RGB matrix effect engine for DMX rigs",
	Long: `rgbseq animates pattern effects across a grid of fixture heads.

It previews effects live in the terminal and on a Launchpad X, streams
frames to Art-Net nodes, and bakes an effect into a deterministic
sequence file for playback elsewhere.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugLog {
			debug.Enable()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rigPath, "rig", "", "rig file (defaults to the configured rig, else a demo grid)")
	rootCmd.PersistentFlags().StringVarP(&groupName, "group", "g", "", "fixture group to drive")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "log diagnostics to ~/.config/rgbseq/debug.log")
}

// loadConfig reads the app config and honors its debug log path unless
// the --debug flag already claimed the default one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !debugLog && cfg.DebugLog != "" {
		if err := debug.EnableAt(cfg.DebugLog); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadRig resolves the rig source: the --rig flag, then the configured
// path, else a demo grid sized from config.
func loadRig(cfg *config.Config) (*fixture.Rig, error) {
	path := rigPath
	if path == "" {
		path = cfg.RigPath
	}
	if path == "" {
		return fixture.Demo(cfg.GridWidth, cfg.GridHeight), nil
	}
	return fixture.Load(path)
}

// resolveGroup picks the fixture group the effect drives and verifies
// the rig actually has it.
func resolveGroup(cfg *config.Config, rig *fixture.Rig) (string, error) {
	name := groupName
	if name == "" {
		name = cfg.Group
	}
	if _, ok := rig.Group(name); !ok {
		return "", fmt.Errorf("group %q not in rig (have: %s)", name, strings.Join(rig.GroupNames(), ", "))
	}
	return name, nil
}

// parseColorFlag reads a hex color flag, tolerating a missing "#".
func parseColorFlag(s string) (rgb.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return rgb.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return rgb.New(r, g, b), nil
}
