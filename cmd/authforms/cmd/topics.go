package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nfrund/authforms/internal/submit"
	"github.com/spf13/cobra"
)

// topicDisplay represents a topic for display purposes.
type topicDisplay struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newTopicsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List the submission event topics",
		Long: `List the topics a successful submit is published on.

Output formats:
  table - Human-readable format (default)
  json  - Machine-readable JSON format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := make([]topicDisplay, 0, len(submit.Events()))
			for _, event := range submit.Events() {
				topics = append(topics, topicDisplay{Name: event.Name(), Description: event.Description()})
			}
			switch format {
			case "table":
				return displayTopicsTable(cmd.OutOrStdout(), topics)
			case "json":
				return displayTopicsJSON(cmd.OutOrStdout(), topics)
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}

func displayTopicsTable(out io.Writer, topics []topicDisplay) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-----------")
	for _, t := range topics {
		fmt.Fprintf(w, "%s\t%s\n", t.Name, t.Description)
	}
	return w.Flush()
}

func displayTopicsJSON(out io.Writer, topics []topicDisplay) error {
	output := struct {
		Topics []topicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}{
		Topics: topics,
		Count:  len(topics),
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
