package main

import (
	"fmt"

	"github.com/pdrpinto/gridpath"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gridpath",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gridpath version %s\n", gridpath.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
