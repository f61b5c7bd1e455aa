package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print today's focus count, bonds and recent history",
	Example: `  hashira stats
  hashira stats --days 14`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Number of days of history to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", statsDays)
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	return printStats(cmd.OutOrStdout(), rt, time.Now(), statsDays)
}

func printStats(w io.Writer, rt *env, now time.Time, days int) error {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)

	s := rt.store
	today := now.Format("2006-01-02")
	stats := s.LoadStats(today)
	goal := s.SettingInt("daily_goal", 8)

	cyan.Fprintln(w, "TODAY")
	fmt.Fprintf(w, "Date:       %s\n", stats.Date)
	fmt.Fprint(w, "Sessions:   ")
	if stats.Count >= goal {
		green.Fprintf(w, "%d/%d\n", stats.Count, goal)
	} else {
		fmt.Fprintf(w, "%d/%d\n", stats.Count, goal)
	}
	fmt.Fprintln(w)

	tasks := s.LoadTasks()
	active := s.LoadActiveTaskID()
	cyan.Fprintln(w, "BONDS")
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(none)")
	}
	for _, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %-50s %3d", check, t.Text, t.FocusCount)
		if t.ID == active {
			yellow.Fprintln(w, line+"  <- active")
			continue
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1-days)
	end := start.AddDate(0, 0, days)
	counts, err := s.DailyFocusCounts(start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return err
	}
	byDate := make(map[string]int, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Count
	}

	cyan.Fprintf(w, "LAST %d DAYS\n", days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		n := byDate[date]
		bar := ""
		for i := 0; i < n; i++ {
			bar += "■"
		}
		fmt.Fprintf(w, "%s %s %2d %s\n", date, d.Format("Mon"), n, bar)
	}
	return nil
}
