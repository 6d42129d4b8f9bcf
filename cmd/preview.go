package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rgbseq/artnet"
	"rgbseq/debug"
	"rgbseq/matrix"
	"rgbseq/midi"
	"rgbseq/theme"
	"rgbseq/tui"
)

var (
	previewEffect effectFlags
	previewArtnet string
	previewNoPads bool
	previewOut    string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the interactive terminal preview",
	Long: `Run the effect live in an interactive terminal preview.

The grid renders in truecolor, a connected Launchpad X mirrors the
frames on its pads (any pad press toggles the transport), and an
Art-Net host can receive the frames as DMX. Keys edit the effect in
place; 's' bakes the current effect to a sequence file.`,
	RunE: runPreview,
}

func init() {
	previewEffect.register(previewCmd)
	previewCmd.Flags().StringVar(&previewArtnet, "artnet", "", "stream frames to this Art-Net host while previewing")
	previewCmd.Flags().BoolVar(&previewNoPads, "no-pads", false, "skip Launchpad mirroring")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "sequences", "directory baked sequences are written to")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rig, err := loadRig(cfg)
	if err != nil {
		return err
	}
	group, err := resolveGroup(cfg, rig)
	if err != nil {
		return err
	}
	algo, err := previewEffect.resolveAlgorithm(cfg)
	if err != nil {
		return err
	}
	mcfg, err := previewEffect.matrixConfig()
	if err != nil {
		return err
	}

	mtx := matrix.New(mcfg, algo, rig, group)
	player := matrix.NewPlayer(mtx, cfg.Tick())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go player.Run(ctx)

	var deviceMgr *midi.DeviceManager
	if cfg.Launchpad.Mirror && !previewNoPads {
		deviceMgr = midi.NewDeviceManager()
		go deviceMgr.Run(ctx)
	}

	m := tui.NewModel(player, deviceMgr, theme.New(theme.LoadGPLOr(cfg.UI.PalettePath)))
	m.SaveDir = previewOut

	host := previewArtnet
	if host == "" && cfg.ArtNet.Enabled {
		host = cfg.ArtNet.Host
	}
	if host != "" {
		sender, err := artnet.NewSender(host, rig)
		if err != nil {
			return err
		}
		defer sender.Close()
		m.Sender = sender
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}

	cfg.UI.LastAlgorithm = mtx.Algorithm()
	cfg.UI.LastGroup = group
	if err := cfg.Save(); err != nil {
		debug.Log("config", "save failed: %v", err)
	}
	return nil
}
