// Package main provides the tailor CLI: resume in, job description in,
// tailored LaTeX resume out.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume to a job description",
	Long:  "Tailor extracts a structured profile from a resume document, analyzes a job description, rewrites the resume toward the job without fabricating anything, and renders the result as a LaTeX document.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
