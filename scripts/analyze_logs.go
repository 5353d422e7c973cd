package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	Lines            int
	Malformed        int
	Levels           map[string]int
	Requests         int
	FailedRequests   int
	LoginSuccess     int
	LoginFailures    int
	DraftsCreated    int
	DraftsSubmitted  int
	DraftsRejected   int
	SlowestRoute     string
	SlowestDuration  time.Duration
	ErrorPatterns    map[string]int
	RequestsByStatus map[int]int
}

type logEntry struct {
	Level    string  `json:"level"`
	Msg      string  `json:"msg"`
	Method   string  `json:"method"`
	Path     string  `json:"path"`
	Status   int     `json:"status"`
	Duration float64 `json:"duration"`
}

var (
	digits = regexp.MustCompile(`\d+`)
	quoted = regexp.MustCompile(`"[^"]*"`)
)

func newLogStats() *LogStats {
	return &LogStats{
		Levels:           make(map[string]int),
		ErrorPatterns:    make(map[string]int),
		RequestsByStatus: make(map[int]int),
	}
}

func main() {
	logDir := flag.String("dir", "./logs", "log directory")
	date := flag.String("date", time.Now().Format("2006-01-02"), "day to analyze (YYYY-MM-DD)")
	top := flag.Int("top", 10, "number of error patterns to print")
	flag.Parse()

	path := filepath.Join(*logDir, fmt.Sprintf("ordersphere-%s.log", *date))
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", path, err)
		os.Exit(1)
	}
	defer file.Close()

	stats, err := analyze(file)
	if err != nil {
		fmt.Printf("Error reading log file: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, stats, *top)
}

// analyze reads JSON log lines and aggregates them.
func analyze(r io.Reader) (*LogStats, error) {
	stats := newLogStats()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			stats.Malformed++
			continue
		}
		stats.Levels[e.Level]++

		switch {
		case e.Msg == "request":
			stats.Requests++
			stats.RequestsByStatus[e.Status]++
			if e.Status >= 400 {
				stats.FailedRequests++
			}
			// zap encodes durations as seconds.
			d := time.Duration(e.Duration * float64(time.Second))
			if d > stats.SlowestDuration {
				stats.SlowestDuration = d
				stats.SlowestRoute = e.Method + " " + e.Path
			}
		case strings.HasPrefix(e.Msg, "Client ") && strings.HasSuffix(e.Msg, " logged in"):
			stats.LoginSuccess++
		case strings.HasPrefix(e.Msg, "Failed login attempt"):
			stats.LoginFailures++
		case strings.HasPrefix(e.Msg, "Draft order ") && strings.Contains(e.Msg, " created by client "):
			stats.DraftsCreated++
		case strings.HasPrefix(e.Msg, "Draft order ") && strings.Contains(e.Msg, " submitted by client "):
			stats.DraftsSubmitted++
		case strings.HasPrefix(e.Msg, "Draft order ") && strings.Contains(e.Msg, " rejected: "):
			stats.DraftsRejected++
		}

		if e.Level == "error" {
			stats.ErrorPatterns[pattern(e.Msg)]++
		}
	}
	return stats, scanner.Err()
}

// pattern strips ids and quoted values so similar errors group together.
func pattern(msg string) string {
	if i := strings.Index(msg, ": "); i > 0 {
		msg = msg[:i]
	}
	msg = quoted.ReplaceAllString(msg, `"…"`)
	return digits.ReplaceAllString(msg, "N")
}

func printReport(w io.Writer, stats *LogStats, top int) {
	fmt.Fprintln(w, "=== OrderSphere Log Analysis Report ===")
	fmt.Fprintf(w, "Lines: %d (malformed: %d)\n", stats.Lines, stats.Malformed)

	fmt.Fprintln(w, "\nLevels:")
	levels := make([]string, 0, len(stats.Levels))
	for l := range stats.Levels {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	for _, l := range levels {
		fmt.Fprintf(w, "  %-6s %d\n", l, stats.Levels[l])
	}

	fmt.Fprintln(w, "\nRequests:")
	fmt.Fprintf(w, "  Total: %d, failed: %d\n", stats.Requests, stats.FailedRequests)
	if stats.SlowestRoute != "" {
		fmt.Fprintf(w, "  Slowest: %s (%s)\n", stats.SlowestRoute, stats.SlowestDuration)
	}

	fmt.Fprintln(w, "\nAuthentication:")
	fmt.Fprintf(w, "  Successful logins: %d\n", stats.LoginSuccess)
	fmt.Fprintf(w, "  Failed logins: %d\n", stats.LoginFailures)

	fmt.Fprintln(w, "\nDraft orders:")
	fmt.Fprintf(w, "  Created: %d\n", stats.DraftsCreated)
	fmt.Fprintf(w, "  Submitted: %d\n", stats.DraftsSubmitted)
	fmt.Fprintf(w, "  Rejected for offers: %d\n", stats.DraftsRejected)

	if len(stats.ErrorPatterns) == 0 {
		return
	}
	type count struct {
		pattern string
		n       int
	}
	counts := make([]count, 0, len(stats.ErrorPatterns))
	for p, n := range stats.ErrorPatterns {
		counts = append(counts, count{p, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].pattern < counts[j].pattern
	})
	if len(counts) > top {
		counts = counts[:top]
	}
	fmt.Fprintln(w, "\nTop error patterns:")
	for _, c := range counts {
		fmt.Fprintf(w, "  %4d  %s\n", c.n, c.pattern)
	}
}
