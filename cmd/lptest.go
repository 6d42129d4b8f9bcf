package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"rgbseq/midi"
	"rgbseq/theme"
)

var lptestCmd = &cobra.Command{
	Use:   "lptest [detect|sysex|leds|poll]",
	Short: "Launchpad X smoke tests",
	Long: `Poke a connected Launchpad X directly, bypassing the device manager.

  detect  find the Launchpad in the port list
  sysex   switch it to programmer mode
  leds    sweep the theme palette up the pad diagonal (default)
  poll    watch for connect/disconnect every 2 seconds`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"detect", "sysex", "leds", "poll"},
	RunE:      runLPTest,
}

func init() {
	rootCmd.AddCommand(lptestCmd)
}

func runLPTest(cmd *cobra.Command, args []string) error {
	mode := "leds"
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "detect":
		return lpDetect()
	case "sysex":
		return lpSysEx()
	case "leds":
		return lpLEDs()
	case "poll":
		return lpPoll()
	}
	return fmt.Errorf("unknown mode %q", mode)
}

func isLaunchpadPort(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}

func findLaunchpadOut() (drivers.Out, error) {
	for _, p := range gomidi.GetOutPorts() {
		if isLaunchpadPort(p.String()) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no Launchpad found (rgbseq ports lists what is connected)")
}

func lpDetect() error {
	fmt.Println("Looking for Launchpad X...")

	found := false
	for i, p := range gomidi.GetInPorts() {
		if isLaunchpadPort(p.String()) {
			fmt.Printf("Found input: %d: %s\n", i, p.String())
			found = true
		}
	}
	for i, p := range gomidi.GetOutPorts() {
		if isLaunchpadPort(p.String()) {
			fmt.Printf("Found output: %d: %s\n", i, p.String())
			found = true
		}
	}

	if !found {
		return fmt.Errorf("Launchpad X not found")
	}
	fmt.Println("\nLaunchpad X detected!")
	return nil
}

func lpSysEx() error {
	out, err := findLaunchpadOut()
	if err != nil {
		return err
	}
	fmt.Printf("Using output: %s\n", out.String())

	send, err := gomidi.SendTo(out)
	if err != nil {
		return fmt.Errorf("open port: %w", err)
	}

	// Programmer mode: F0 00 20 29 02 0C 00 7F F7
	fmt.Println("Sending: Programmer mode (layout 0x7F)")
	if err := send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F})); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)

	// Enable LED feedback: F0 00 20 29 02 0C 0A 01 01 F7
	fmt.Println("Sending: Enable LED feedback")
	if err := send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x0A, 0x01, 0x01})); err != nil {
		return err
	}

	fmt.Println("Done! Launchpad should now be in Programmer mode")
	return nil
}

func lpLEDs() error {
	out, err := findLaunchpadOut()
	if err != nil {
		return err
	}
	fmt.Printf("Using output: %s\n", out.String())

	lp, err := midi.NewLaunchpadController(out.String(), nil, out)
	if err != nil {
		return err
	}

	th := theme.New(theme.Default())
	fmt.Println("Sweeping the palette up the diagonal...")
	for i := 0; i < 8; i++ {
		c := th.RGB(float64(i) / 7)
		lp.SetLEDRGB(i, i, [3]uint8(c), midi.ChannelStatic)
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	if err := lp.Close(); err != nil {
		return err
	}
	fmt.Println("Done!")
	return nil
}

func lpPoll() error {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect the Launchpad to test. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		var inNames, outNames []string
		for _, p := range gomidi.GetInPorts() {
			inNames = append(inNames, p.String())
		}
		for _, p := range gomidi.GetOutPorts() {
			outNames = append(outNames, p.String())
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			for _, name := range inNames {
				if strings.Contains(strings.ToLower(name), "launchpad") {
					fmt.Println("  -> Launchpad detected!")
				}
			}

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
