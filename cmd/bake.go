package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rgbseq/config"
	"rgbseq/matrix"
	"rgbseq/pattern"
)

var (
	bakeEffect effectFlags
	bakeOut    string
	bakeName   string
)

var bakeCmd = &cobra.Command{
	Use:   "bake",
	Short: "Bake an effect into a sequence file",
	Long: `Unroll an effect into a sequence file without opening the preview.

The effect runs exactly one full traversal (twice the steps minus one
for ping-pong) and every step's channel values are written in a stable
order, so identical inputs always bake identical files.`,
	RunE: runBake,
}

func init() {
	bakeEffect.register(bakeCmd)
	bakeCmd.Flags().StringVarP(&bakeOut, "out", "o", "sequence.json", "output file")
	bakeCmd.Flags().StringVar(&bakeName, "name", "", "sequence name (default: the algorithm name)")
	rootCmd.AddCommand(bakeCmd)
}

func runBake(cmd *cobra.Command, args []string) error {
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
	algo, err := bakeEffect.resolveAlgorithm(cfg)
	if err != nil {
		return err
	}
	mcfg, err := bakeEffect.matrixConfig()
	if err != nil {
		return err
	}

	name := bakeName
	if name == "" {
		name = strings.ToLower(algo.Name())
	}

	seq := matrix.New(mcfg, algo, rig, group).Bake(name)
	if err := seq.Save(bakeOut); err != nil {
		return err
	}

	fmt.Printf("baked %q: %d steps, %d values, %s total -> %s\n",
		name, len(seq.Steps), seq.ValueCount(), seq.TotalDuration(), bakeOut)
	return nil
}

// effectFlags is the matrix parameter set shared by preview and bake.
// Empty or zero flags keep the engine defaults.
type effectFlags struct {
	algorithm string
	order     string
	direction string
	blend     string
	control   string
	steps     int
	start     string
	end       string
	duration  time.Duration
	fadeIn    time.Duration
	fadeOut   time.Duration
	noDimmer  bool
}

func (f *effectFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.algorithm, "algorithm", "a", "", "pattern algorithm ("+strings.Join(pattern.Available(), ", ")+")")
	fs.StringVar(&f.order, "order", "", "run order (loop, singleshot, pingpong)")
	fs.StringVar(&f.direction, "direction", "", "traversal direction (forward, backward)")
	fs.StringVar(&f.blend, "blend", "", "blend mode (normal, mask, additive, subtractive)")
	fs.StringVar(&f.control, "control", "", "control mode (rgb, amber, white, uv, dimmer, shutter)")
	fs.IntVar(&f.steps, "steps", 0, "step count override (0 = algorithm default)")
	fs.StringVar(&f.start, "start", "", "start color as rrggbb hex")
	fs.StringVar(&f.end, "end", "", "end color as rrggbb hex (empty = no interpolation)")
	fs.DurationVar(&f.duration, "duration", 0, "per-step duration (default 500ms)")
	fs.DurationVar(&f.fadeIn, "fade-in", 0, "fade-in speed (0 = fade edge disabled)")
	fs.DurationVar(&f.fadeOut, "fade-out", 0, "fade-out speed (0 = fade edge disabled)")
	fs.BoolVar(&f.noDimmer, "no-dimmer", false, "skip master intensity values")
}

func (f *effectFlags) resolveAlgorithm(cfg *config.Config) (pattern.Algorithm, error) {
	name := f.algorithm
	if name == "" {
		name = cfg.UI.LastAlgorithm
	}
	if name == "" {
		name = "Stripe"
	}
	return pattern.Get(name)
}

func (f *effectFlags) matrixConfig() (matrix.Config, error) {
	cfg := matrix.DefaultConfig()

	if f.order != "" {
		order, err := matrix.ParseRunOrder(f.order)
		if err != nil {
			return cfg, err
		}
		cfg.RunOrder = order
	}
	if f.direction != "" {
		dir, err := matrix.ParseDirection(f.direction)
		if err != nil {
			return cfg, err
		}
		cfg.Direction = dir
	}
	if f.blend != "" {
		blend, err := matrix.ParseBlendMode(f.blend)
		if err != nil {
			return cfg, err
		}
		cfg.BlendMode = blend
	}
	if f.control != "" {
		control, err := matrix.ParseControlMode(f.control)
		if err != nil {
			return cfg, err
		}
		cfg.ControlMode = control
	}
	if f.steps > 0 {
		cfg.Steps = f.steps
	}
	if f.start != "" {
		c, err := parseColorFlag(f.start)
		if err != nil {
			return cfg, err
		}
		cfg.StartColor = c
	}
	if f.end != "" {
		c, err := parseColorFlag(f.end)
		if err != nil {
			return cfg, err
		}
		cfg.EndColor = &c
	}
	if f.duration > 0 {
		cfg.Duration = f.duration
	}
	cfg.FadeIn = f.fadeIn
	cfg.FadeOut = f.fadeOut
	cfg.DimmerControl = !f.noDimmer
	return cfg, nil
}
