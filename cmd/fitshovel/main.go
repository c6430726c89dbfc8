// Command fitshovel watches a directory for FIT files, decodes each one and
// forwards the decoded records to a STOMP broker, per
// SPEC_FULL.md §4's ingest daemon.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ridgeway-telemetry/fitdecode/internal/fitshovel"
)

var (
	version = "dev"
	logger  = logrus.New()
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "fitshovel",
	Short: "Watch a directory for FIT files and forward decoded records to a broker",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingest daemon in the foreground",
	RunE:  runDaemon,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check a running daemon's metrics endpoint",
	RunE:  runStatus,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.AddCommand(runCmd, statusCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fitshovel version", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	textFormatter := logrus.TextFormatter{FullTimestamp: true, DisableLevelTruncation: true}
	logger.SetFormatter(&textFormatter)

	var config fitshovel.Config
	if err := config.ReadConfig(); err != nil {
		return err
	}
	if config.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	fitshovel.StartMetrics(config.MetricsEnable, config.MetricsPort, logger)

	queue, err := fitshovel.NewConfirmationQueue(config.QueueDirectory, logger)
	if err != nil {
		return fmt.Errorf("fitshovel: opening queue: %w", err)
	}
	defer queue.Close()

	session := fitshovel.NewStompSession(config.StompURL, config.StompHost, config.StompTopic,
		config.StompUser, config.StompPassword, config.StompTLS, logger)

	go func() {
		for {
			payload, err := queue.Dequeue()
			if err != nil {
				logger.Errorln("fitshovel: failed to dequeue:", err)
				continue
			}
			session.Publish(payload)
		}
	}()

	watcher := fitshovel.NewDirWatcher(config.WatchDir, config.FilePattern, 5*time.Second, logger)
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("fitshovel: starting watcher: %w", err)
	}
	defer watcher.Stop()

	pool := fitshovel.NewPool(4, queue, logger)

	logger.Infoln("fitshovel", version, "watching", config.WatchDir, "for", config.FilePattern)
	return pool.Run(context.Background(), watcher.Paths())
}

type daemonStats struct {
	filesDecoded    int64
	recordsEmitted  int64
	decodeErrors    int64
	queueSize       int64
}

func runStatus(cmd *cobra.Command, args []string) error {
	var config fitshovel.Config
	if err := config.ReadConfig(); err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Checking the fitshovel metrics endpoint")
	stats, err := fetchStats(config.MetricsPort)
	if err != nil {
		spinner.Fail("Unable to reach the metrics endpoint: ", err)
		os.Exit(1)
	}
	spinner.Success()

	if stats.queueSize > 1000 {
		pterm.Error.Println("The queue has", stats.queueSize, "pending batches, the daemon may not be keeping up")
	} else {
		pterm.Success.Println("Queue depth is", stats.queueSize, "- within the healthy range")
	}
	pterm.Info.Println("Files decoded so far:", stats.filesDecoded)
	pterm.Info.Println("Records emitted so far:", stats.recordsEmitted)
	if stats.decodeErrors > 0 {
		pterm.Warning.Println("Decode errors so far:", stats.decodeErrors)
	}
	return nil
}

func fetchStats(metricsPort int) (daemonStats, error) {
	url := "http://localhost:" + strconv.Itoa(metricsPort) + "/metrics"
	resp, err := http.Get(url)
	if err != nil {
		return daemonStats{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return daemonStats{}, err
	}

	var stats daemonStats
	for _, line := range strings.Split(string(body), "\n") {
		switch {
		case strings.HasPrefix(line, "fitshovel_files_decoded_total"):
			stats.filesDecoded = parseMetricInt(line)
		case strings.HasPrefix(line, "fitshovel_records_emitted_total"):
			stats.recordsEmitted = parseMetricInt(line)
		case strings.HasPrefix(line, "fitshovel_decode_errors_total"):
			stats.decodeErrors = parseMetricInt(line)
		case strings.HasPrefix(line, "fitshovel_queue_size"):
			stats.queueSize = parseMetricInt(line)
		}
	}
	return stats, nil
}

func parseMetricInt(line string) int64 {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0
	}
	f, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		logger.Errorln("fitshovel: unable to parse metric line", line, ":", err)
		return 0
	}
	return int64(f)
}
