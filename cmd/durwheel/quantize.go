package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/durwheel/durwheel/internal/logging"
	"github.com/durwheel/durwheel/internal/timespan"
	"github.com/durwheel/durwheel/internal/util"
)

var (
	quantizeMode     string
	quantizeHourInt  int
	quantizeMinInt   int
	quantizeSecInt   int
	quantizeRounding string
	quantizeMin      int
	quantizeMax      int
	quantizeJSON     bool
)

var quantizeCmd = &cobra.Command{
	Use:   "quantize <seconds>",
	Short: "Quantize a duration without starting the TUI",
	Long: `Quantize snaps a duration in seconds onto the configured grid
and prints the result. Flags override the values from the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuantize,
}

func init() {
	quantizeCmd.Flags().StringVar(&quantizeMode, "mode", "", "Unit mode: hour, hourMinute, hourMinuteSecond, minute, minuteSecond, second")
	quantizeCmd.Flags().IntVar(&quantizeHourInt, "hour-interval", 0, "Hour wheel step")
	quantizeCmd.Flags().IntVar(&quantizeMinInt, "minute-interval", 0, "Minute wheel step")
	quantizeCmd.Flags().IntVar(&quantizeSecInt, "second-interval", 0, "Second wheel step")
	quantizeCmd.Flags().StringVar(&quantizeRounding, "rounding", "", "Rounding direction: down, up")
	quantizeCmd.Flags().IntVar(&quantizeMin, "min", -1, "Minimum duration in seconds")
	quantizeCmd.Flags().IntVar(&quantizeMax, "max", -1, "Maximum duration in seconds")
	quantizeCmd.Flags().BoolVar(&quantizeJSON, "json", false, "Print the result as JSON")
}

func runQuantize(cmd *cobra.Command, args []string) error {
	logging.Disable()

	seconds, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid seconds %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if quantizeMode != "" {
		cfg.Mode = quantizeMode
	}
	if quantizeRounding != "" {
		cfg.Rounding = quantizeRounding
	}
	if quantizeHourInt > 0 {
		cfg.HourInterval = quantizeHourInt
	}
	if quantizeMinInt > 0 {
		cfg.MinuteInterval = quantizeMinInt
	}
	if quantizeSecInt > 0 {
		cfg.SecondInterval = quantizeSecInt
	}
	if quantizeMin >= 0 {
		min := quantizeMin
		cfg.MinimumSeconds = &min
	}
	if quantizeMax >= 0 {
		max := quantizeMax
		cfg.MaximumSeconds = &max
	}

	// Reject overrides instead of silently resetting them.
	if _, err := timespan.ParseMode(cfg.Mode); err != nil {
		return err
	}
	if _, err := timespan.ParseRounding(cfg.Rounding); err != nil {
		return err
	}
	if !timespan.ValidInterval(cfg.HourInterval, 24) {
		return fmt.Errorf("hour interval %d must evenly divide 24", cfg.HourInterval)
	}
	if !timespan.ValidInterval(cfg.MinuteInterval, 60) {
		return fmt.Errorf("minute interval %d must evenly divide 60", cfg.MinuteInterval)
	}
	if !timespan.ValidInterval(cfg.SecondInterval, 60) {
		return fmt.Errorf("second interval %d must evenly divide 60", cfg.SecondInterval)
	}

	opts := cfg.Options()
	result := timespan.Quantize(seconds, opts)

	if quantizeJSON {
		out := map[string]interface{}{
			"hour":          result.Hour,
			"minute":        result.Minute,
			"second":        result.Second,
			"total_seconds": result.TotalSeconds(),
			"display":       result.String(),
			"formatted":     util.FormatSeconds(result.TotalSeconds()),
			"mode":          opts.Mode.String(),
			"rounding":      opts.Rounding.String(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%s (%s)\n", result, util.FormatSeconds(result.TotalSeconds()))
	return nil
}
