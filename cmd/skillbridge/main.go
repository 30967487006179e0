// Package main provides the entry point for the SkillBridge CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillbridge",
	Short: "SkillBridge skill gap analyzer",
	Long:  "SkillBridge compares a resume against a job description, reports skill gaps and generates a structured training curriculum to close them.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
