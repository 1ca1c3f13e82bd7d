package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/config"
	"github.com/jackzampolin/roomfinder/internal/home"
	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/svcctx"
	"github.com/jackzampolin/roomfinder/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "roomfinder",
	Short: "Find your exam rooms from the exam schedule and your class routine",
	Long: `Roomfinder reads an exam schedule spreadsheet and tells each student
which room they sit each exam in.

It can:
  - Normalize schedules with free-form headers and title rows
  - Resolve rooms split by student ID ranges or by section
  - Read a class routine PDF and pick your courses and sections
  - Write a printable schedule of your exams`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.roomfinder/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "roomfinder home directory (default: ~/.roomfinder)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "debug logging",
	)

	rootCmd.PersistentPreRunE = setupServices

	rootCmd.AddCommand(
		versionCmd,
		initCmd,
		configCmd,
		recordsCmd,
		searchCmd,
		roomCmd,
		extractCmd,
		planCmd,
		shellCmd,
	)
}

// setupServices loads config, builds the logger and attaches both to the
// command context.
func setupServices(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	output.SetFormat(format)

	h, err := home.New(homeDir)
	if err != nil {
		return err
	}

	file := cfgFile
	if file == "" && h.ConfigExists() {
		file = h.ConfigPath()
	}
	mgr, err := config.NewManager(file)
	if err != nil {
		return err
	}

	level := mgr.Get().Level()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	mgr.SetLogger(logger)

	cmd.SetContext(svcctx.WithServices(cmd.Context(), &svcctx.Services{
		Config: mgr,
		Logger: logger,
		Home:   h,
	}))
	return nil
}
