package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/fatcatfablab/hwbot/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// flags
	envFile string
	logFile string

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "hwbot",
		Short: "hwbot reports homework review status changes to a chat",
		Long: "hwbot polls the Practicum homework statuses API.\n" +
			"When the status of the latest homework changes, it posts the " +
			"reviewer's verdict to a telegram or slack chat",
		PersistentPreRunE: setup,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "envFile", ".env", "File to load environment variables from, if present")
	pf.StringVar(&logFile, "logFile", "", "Append logs to this file instead of stderr")
	config.RegisterFlags(pf)
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", envFile, err)
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		log.SetOutput(f)
	}

	var err error
	cfg, err = config.Load(cmd.Flags())
	return err
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
