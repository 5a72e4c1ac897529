package main

import (
	"fmt"

	lifeassist "github.com/MahidharReddy003/aislingshot-sub000"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lifeassist",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lifeassist version %s\n", lifeassist.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
