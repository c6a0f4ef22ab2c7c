package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const cliVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sonicindex version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sonicindex v" + cliVersion)
	},
}
