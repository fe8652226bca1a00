package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/assemble"
)

var templatesCommand = &cobra.Command{
	Use:   "templates",
	Short: "List the bundled LaTeX templates",
	Run: func(_ *cobra.Command, _ []string) {
		for _, id := range assemble.Templates() {
			fmt.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(templatesCommand)
}
