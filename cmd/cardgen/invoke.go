// cmd/cardgen/invoke.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cardgen/internal/common/logger"
	"cardgen/internal/models"
)

var eventPath string

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Run the function once on an event",
	Long: `Read an event ({"httpMethod": ..., "body": ...}) from --event or stdin,
run generate-product once and print the response event as JSON.`,
	RunE: runInvoke,
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringVar(&eventPath, "event", "", "Path to the event JSON file (default: stdin)")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the response, so logs go to stderr
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, "stderr")

	event, err := readEvent(eventPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	resp := newHandler(cfg, log).Handle(context.Background(), event)

	out, err := models.MarshalJSON(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func readEvent(path string, stdin io.Reader) (models.Request, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return models.Request{}, fmt.Errorf("read event: %w", err)
	}

	var event models.Request
	if err := json.Unmarshal(data, &event); err != nil {
		return models.Request{}, fmt.Errorf("parse event: %w", err)
	}
	return event, nil
}
