package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("version: %s, commit: %s\n", ReleaseVersion, ReleaseCommit)
	},
}
