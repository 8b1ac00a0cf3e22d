package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/five82/logtop/internal/config"
	"github.com/five82/logtop/internal/logtail"
)

type fileStatus struct {
	entry   config.Entry
	info    os.FileInfo
	problem string
}

func (s fileStatus) ok() bool { return s.problem == "" }

func newCheckCommand() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "check <config>",
		Short: "Verify the files listed in a config without starting the dashboard",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{cmd: cmd, err: fmt.Errorf("expected 1 config path, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines < 0 {
				return usageError{cmd: cmd, err: fmt.Errorf("invalid lines %d: must be >= 0", lines)}
			}
			entries, err := config.Load(args[0])
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			statuses := checkFiles(entries)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderCheckTable(statuses))
			if lines > 0 {
				writePreviews(out, statuses, lines)
			}

			usable := 0
			for _, s := range statuses {
				if s.ok() {
					usable++
				}
			}
			fmt.Fprintf(out, "%d of %d files can be monitored\n", usable, len(statuses))
			if usable == 0 {
				return fmt.Errorf("check %s: no openable files", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Preview the last n lines of each file")
	return cmd
}

// checkFiles opens every entry the way the dashboard would.
func checkFiles(entries []config.Entry) []fileStatus {
	statuses := make([]fileStatus, 0, len(entries))
	for _, entry := range entries {
		status := fileStatus{entry: entry}
		file, err := os.Open(entry.Path)
		if err != nil {
			status.problem = err.Error()
			statuses = append(statuses, status)
			continue
		}
		info, err := file.Stat()
		_ = file.Close()
		switch {
		case err != nil:
			status.problem = err.Error()
		case info.IsDir():
			status.problem = "is a directory"
		default:
			status.info = info
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func renderCheckTable(statuses []fileStatus) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Path", "Size", "Modified", "Status"})
	for _, s := range statuses {
		size, modified, status := "-", "-", "ok"
		if s.info != nil {
			size = humanize.IBytes(uint64(s.info.Size()))
			modified = humanize.Time(s.info.ModTime())
		}
		if !s.ok() {
			status = s.problem
		}
		tw.AppendRow(table.Row{s.entry.Name, s.entry.Path, size, modified, status})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func writePreviews(w io.Writer, statuses []fileStatus, lines int) {
	for _, s := range statuses {
		if !s.ok() {
			continue
		}
		tail, err := logtail.Read(s.entry.Path, lines)
		fmt.Fprintf(w, "\n==> %s <==\n", s.entry.Name)
		if err != nil {
			fmt.Fprintf(w, "read failed: %v\n", err)
			continue
		}
		if len(tail) > 0 {
			fmt.Fprintln(w, strings.Join(tail, "\n"))
		}
	}
	fmt.Fprintln(w)
}
