package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/marmos91/blocklist/pkg/config"
	"github.com/spf13/cobra"
)

var (
	logsFollow bool
	logsLines  int
	logsSince  string
	logsRun    string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Tail workload logs",
	Long: `Display and optionally follow the Blocklist log file.

This command reads the log file configured in 'logging.output' and displays
the most recent entries. Runs that log to stdout/stderr have no file to read.

Examples:
  # Show last 100 lines (default)
  blocklist logs

  # Follow logs while a long verify batch is running
  blocklist logs -f

  # Only lines of one run
  blocklist logs --run 3f0c2a9e-5d7b-4a51-9a43-0c3f5b1e2d77

  # Show logs since a specific time
  blocklist logs --since "2024-01-15T10:00:00Z"`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 100, "Number of lines to show")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since timestamp (RFC3339 format)")
	logsCmd.Flags().StringVar(&logsRun, "run", "", "Only show lines of this run ID")
}

// logFilter selects the lines printed by the logs command.
type logFilter struct {
	since time.Time
	runID string
}

func (f logFilter) match(line string) bool {
	if f.runID != "" && !strings.Contains(line, f.runID) {
		return false
	}
	if !f.since.IsZero() {
		if t := extractTimestamp(line); !t.IsZero() && t.Before(f.since) {
			return false
		}
	}
	return true
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logOutput := cfg.Logging.Output
	if logOutput == "stdout" || logOutput == "stderr" {
		return fmt.Errorf("logging is configured to %s, not a file\nSet 'logging.output' to a file path to use this command", logOutput)
	}
	if _, err := os.Stat(logOutput); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s\nNo run has logged to it yet", logOutput)
	}

	filter := logFilter{runID: logsRun}
	if logsSince != "" {
		filter.since, err = time.Parse(time.RFC3339, logsSince)
		if err != nil {
			return fmt.Errorf("invalid --since format (use RFC3339): %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if err := showLogs(out, logOutput, logsLines, filter); err != nil {
		return err
	}
	if !logsFollow {
		return nil
	}
	return followLogs(cmd.Context(), out, logOutput, filter)
}

// showLogs writes the last lines matching filter.
func showLogs(w io.Writer, logFile string, lines int, filter logFilter) error {
	file, err := os.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	tail, err := tailLines(file, lines, filter)
	if err != nil {
		return err
	}
	for _, line := range tail {
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}

// tailLines returns at most n of the last lines of r that match filter.
func tailLines(r io.Reader, n int, filter logFilter) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	ring := make([]string, 0, n)
	next := 0
	scanner := bufio.NewScanner(r)
	// Long attribute lists produce long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !filter.match(line) {
			continue
		}
		if len(ring) < n {
			ring = append(ring, line)
			continue
		}
		ring[next] = line
		next = (next + 1) % n
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}

	return append(ring[next:], ring[:next]...), nil
}

// followLogs prints lines appended to logFile until ctx is cancelled.
func followLogs(ctx context.Context, w io.Writer, logFile string, filter logFilter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(logFile); err != nil {
		return fmt.Errorf("failed to watch log file: %w", err)
	}

	file, err := os.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of log file: %w", err)
	}
	reader := bufio.NewReader(file)

	PrintErr("Following %s (Ctrl+C to stop)...", logFile)

	var partial string
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			for {
				chunk, err := reader.ReadString('\n')
				if err != nil {
					// Keep an unterminated line until the rest is written.
					partial += chunk
					break
				}
				line := strings.TrimSuffix(partial+chunk, "\n")
				partial = ""
				if filter.match(line) {
					_, _ = fmt.Fprintln(w, line)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// textTimeLayout is the timestamp prefix written by the text log handler.
const textTimeLayout = "2006-01-02 15:04:05.000"

// extractTimestamp finds the record time of a text or JSON log line.
func extractTimestamp(line string) time.Time {
	// Text format: [2006-01-02 15:04:05.000] [INFO] ...
	if len(line) > len(textTimeLayout)+1 && line[0] == '[' {
		if t, err := time.ParseInLocation(textTimeLayout, line[1:len(textTimeLayout)+1], time.Local); err == nil {
			return t
		}
	}

	// JSON format: {"time":"2024-01-15T10:30:45.123456789Z",...}
	const timeKey = `"time":"`
	if idx := strings.Index(line, timeKey); idx >= 0 {
		start := idx + len(timeKey)
		if end := strings.IndexByte(line[start:], '"'); end > 0 {
			if t, err := time.Parse(time.RFC3339Nano, line[start:start+end]); err == nil {
				return t
			}
		}
	}

	return time.Time{}
}
