// Package main provides a performance benchmarking tool for the tabchart CLI.
// It generates synthetic CSV datasets of increasing size, times each chart command
// against them with and without run history, and writes the timings to CSV.
//
// Prerequisites:
// - tabchart binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where datasets and charts are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (average without history,
// first run with history and average of the later runs with history).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	DatasetRows   []int
	Commands      map[string][]string
}

var (
	companies = []string{"AAPL", "AMZN", "GOOGL", "META", "MSFT", "NFLX", "NVDA"}
	ageGroups = []string{"18-24", "25-34", "35-44", "45-54", "55+"}
	jobTypes  = []string{"Employed", "Self-employed", "Student", "Unemployed"}
	genders   = []string{"F", "M"}
)

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		DatasetRows:   []int{1_000, 10_000, 100_000, 1_000_000},
		Commands: map[string][]string{
			"line":  {"--date-col", "Date", "--category", "Company", "--value", "Volume", "--title", "Volume"},
			"stack": {"--category", "Age Group", "--value", "Cases", "--group", "Job Type", "--title", "Cases"},
			"pie":   {"--category", "Gender", "--value", "Cases", "--title", "Gender"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the tabchart binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("tabchart"); err != nil {
		return fmt.Errorf("tabchart binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateDataset writes a CSV with the columns every benchmarked command reads
func generateDataset(path string, rows int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"Date", "Company", "Volume", "Age Group", "Job Type", "Gender", "Cases"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	rng := rand.New(rand.NewPCG(42, uint64(rows)))
	start := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range rows {
		day := start.AddDate(0, 0, rng.IntN(365*12))
		record := []string{
			day.Format("2006-01-02"),
			companies[rng.IntN(len(companies))],
			strconv.Itoa(1_000_000 + rng.IntN(50_000_000)),
			ageGroups[rng.IntN(len(ageGroups))],
			jobTypes[rng.IntN(len(jobTypes))],
			genders[i%len(genders)],
			strconv.Itoa(rng.IntN(2)),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarks generates each dataset and times every command against it
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.DatasetRows), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, rows := range config.DatasetRows {
		name := fmt.Sprintf("rows_%d", rows)
		dataPath := filepath.Join(config.WorkDir, name+".csv")
		fmt.Printf("Generating %s\n", dataPath)
		if err := generateDataset(dataPath, rows); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", name, err)
		}

		for _, command := range []string{"line", "stack", "pie"} {
			results = append(results, runBenchmarkSuite(config, name, dataPath, command))
		}
	}

	return results, nil
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, dataPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)
	historyPath := filepath.Join(config.WorkDir, "history.db")

	// Helper to run a benchmark phase
	runPhase := func(historyArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataPath, command, historyArgs, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No history
	_, noHistoryAvg := runPhase([]string{"--history-backend", "none"}, config.NoHistoryRuns, "No-history")

	// Phase 2: SQLite history
	_ = os.Remove(historyPath)
	coldTime, warmAvg := runPhase([]string{"--history-backend", "sqlite", "--history-db-connect", historyPath}, config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a tabchart command multiple times and returns the first
// successful time and the times of the later runs
func runBenchmark(config BenchmarkConfig, dataPath, command string, historyArgs []string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, dataPath, "--out-dir", config.WorkDir, "--quiet"}
	args = append(args, config.Commands[command]...)
	args = append(args, historyArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("tabchart", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			} else {
				fmt.Printf("    run %d failed: %v %s\n", run, cmdErr, strings.TrimSpace(string(output)))
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks that a quiet run printed nothing but warnings
func isSuccess(output []byte) bool {
	return !strings.Contains(string(output), "Fatal")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/tabchart_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"line", "stack", "pie"} {
		fmt.Printf("%s chart:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-14s: No-history: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
