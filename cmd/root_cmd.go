package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cpptoml",
	Short: "Cpptoml is a tool for inspecting TOML configuration files.",
	Long:  "Cpptoml parses a restricted TOML dialect into a document tree and can render the tree back to text, look up qualified keys, or emit JSON.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Cpptoml",
	Long:  `All software has versions. This is Cpptoml's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Cpptoml v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tomlCmd)
}
