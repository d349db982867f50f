package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pixshield/internal/detect"
)

var (
	detectDelay    time.Duration
	detectInterval time.Duration
)

// detectCmd replays keystrokes from stdin, one field value per line, through
// the debounced key detector and prints every state transition.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Run the debounced key detector over values read from stdin",
	Long: `Each input line is the current value of the key field. Lines arriving within
the detection delay of each other are debounced: only the last one is classified.
Use --interval to simulate typing speed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}

		out := cmd.OutOrStdout()
		var mu sync.Mutex
		settled := make(chan struct{}, 1)

		opts := []detect.Option{detect.WithOnChange(func(st detect.Status) {
			mu.Lock()
			printStatus(out, st)
			mu.Unlock()
			if st.State != detect.Detecting {
				select {
				case settled <- struct{}{}:
				default:
				}
			}
		})}
		delay := appInstance.Config.Detect.Delay
		if detectDelay > 0 {
			delay = detectDelay
			opts = append(opts, detect.WithDelay(detectDelay))
		}
		det := appInstance.NewDetector(opts...)
		defer det.Stop()

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			det.Input(scanner.Text())
			if detectInterval > 0 {
				time.Sleep(detectInterval)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}

		// Let the last pending detection fire before exiting.
		for det.State().State == detect.Detecting {
			select {
			case <-settled:
			case <-time.After(2 * delay):
				return nil
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
		}
		return nil
	},
}

func printStatus(out io.Writer, st detect.Status) {
	switch st.State {
	case detect.Detected:
		res := st.Result
		kind := res.Kind.String()
		if res.Phone != "" {
			kind += " (" + string(res.Phone) + ")"
		}
		fmt.Fprintf(out, "%-9s %q -> %s %s\n", st.State, st.Input, color.GreenString(kind), res.Display)
	default:
		fmt.Fprintf(out, "%-9s %q\n", st.State, st.Input)
	}
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().DurationVar(&detectDelay, "delay", 0, "Detection delay (default detect.delay)")
	detectCmd.Flags().DurationVar(&detectInterval, "interval", 0, "Pause between input lines")
}
