package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rgbseq/fixture"
)

var (
	rigInitWidth  int
	rigInitHeight int
	rigInitOut    string
)

var rigCmd = &cobra.Command{
	Use:   "rig",
	Short: "Rig file utilities",
}

var rigInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a demo rig file to edit by hand",
	Long: `Write a demo rig file: a dense grid of one-head RGB fixtures patched
back to back, grouped under "grid". Edit the file to match the real
patching, then point commands at it with --rig.`,
	RunE: runRigInit,
}

func init() {
	rigInitCmd.Flags().IntVar(&rigInitWidth, "width", 8, "grid width in cells")
	rigInitCmd.Flags().IntVar(&rigInitHeight, "height", 8, "grid height in cells")
	rigInitCmd.Flags().StringVarP(&rigInitOut, "out", "o", "rig.json", "output file")
	rigCmd.AddCommand(rigInitCmd)
	rootCmd.AddCommand(rigCmd)
}

func runRigInit(cmd *cobra.Command, args []string) error {
	r := fixture.Demo(rigInitWidth, rigInitHeight)
	if err := r.Save(rigInitOut); err != nil {
		return err
	}
	fmt.Printf("wrote %dx%d rig (%d fixtures) -> %s\n",
		rigInitWidth, rigInitHeight, len(r.Fixtures), rigInitOut)
	return nil
}
