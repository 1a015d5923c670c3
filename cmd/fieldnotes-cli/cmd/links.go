package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fieldnotes/internal/adapters/linkprobe"
	"fieldnotes/internal/adapters/sqlite"
	"fieldnotes/internal/application/commands"
)

var (
	linksCheck       bool
	linksForce       bool
	linksJSON        bool
	linksTimeout     time.Duration
	linksConcurrency int
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List or check cited URLs",
	Long: `Without --check, list every cited URL and the notes citing it, with
the last cached probe result. With --check, probe each URL over HTTP and
record the result; cached results younger than the recheck TTL are
re-used unless --force is given.

Exits non-zero when broken links are found, so it can gate CI.

Examples:
  fieldnotes-cli links
  fieldnotes-cli links --check
  fieldnotes-cli links --check --force --concurrency 16`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		idx, err := GetIndex()
		if err != nil {
			return err
		}

		if !linksCheck {
			return listLinks(idx)
		}

		timeout := linksTimeout
		if !cmd.Flags().Changed("timeout") {
			timeout = cfg.ProbeTimeout
		}
		concurrency := linksConcurrency
		if !cmd.Flags().Changed("concurrency") {
			concurrency = cfg.ProbeConcurrency
		}

		prober := linkprobe.NewProber(timeout, concurrency, logger)
		checkCmd := commands.NewCheckLinksCommand(idx, prober, cfg.RecheckTTL, linksForce)
		result, err := checkCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if linksJSON {
			out := make([]map[string]any, 0, len(result.Results))
			for _, r := range result.Results {
				out = append(out, map[string]any{
					"url":         r.Record.URL,
					"ok":          r.Record.OK,
					"status_code": r.Record.StatusCode,
					"error":       r.Record.Error,
					"redirect":    r.Record.RedirectedTo,
					"cached":      r.Cached,
					"notes":       r.Notes,
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
		} else {
			for _, r := range result.Results {
				status := "ok"
				if !r.Record.OK {
					if r.Record.Error != "" {
						status = r.Record.Error
					} else {
						status = fmt.Sprintf("HTTP %d", r.Record.StatusCode)
					}
				}
				cached := ""
				if r.Cached {
					cached = " (cached)"
				}
				fmt.Printf("%-60s %s%s\n", r.Record.URL, status, cached)
				if !r.Record.OK {
					fmt.Printf("    cited by %s\n", strings.Join(r.Notes, ", "))
				}
			}
			fmt.Printf("%d URL(s), %d broken\n", result.Run.URLs, result.Run.Broken)
		}

		if result.Run.Broken > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func listLinks(idx *sqlite.Index) error {
	citations, err := idx.AllCitations()
	if err != nil {
		return err
	}
	if len(citations) == 0 {
		fmt.Println("No citations")
		return nil
	}
	for url, notes := range citations {
		fmt.Printf("%-60s cited by %s\n", url, strings.Join(notes, ", "))
	}
	return nil
}

func init() {
	linksCmd.Flags().BoolVar(&linksCheck, "check", false, "probe each URL over HTTP")
	linksCmd.Flags().BoolVar(&linksForce, "force", false, "ignore cached probe results")
	linksCmd.Flags().BoolVar(&linksJSON, "json", false, "emit results as JSON")
	linksCmd.Flags().DurationVar(&linksTimeout, "timeout", 10*time.Second, "per-request timeout")
	linksCmd.Flags().IntVar(&linksConcurrency, "concurrency", 8, "max concurrent probes")
	rootCmd.AddCommand(linksCmd)
}
