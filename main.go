package main

import "rgbseq/cmd"

func main() {
	cmd.Execute()
}
