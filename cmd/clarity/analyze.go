package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/homebridge-ai/clarity/internal/clarity"
)

var (
	analyzeJSON   bool
	analyzePretty bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze a caregiving situation",
	Long: `Analyzes a free-text description of a caregiving situation and prints the
summary. Without arguments the text is read from stdin.

Example:
  clarity analyze "Mom fell last night and the hospital says she can't go home"
  echo "I'm exhausted and my brother won't help" | clarity analyze --json`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "render the summary as styled markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	res := clarity.AnalyzeSituation(text)

	out := cmd.OutOrStdout()
	switch {
	case analyzeJSON:
		return writeJSON(out, res)
	case analyzePretty:
		rendered, err := renderMarkdown(resultMarkdown(res))
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, rendered)
		return err
	default:
		_, err = fmt.Fprintln(out, res.Summary)
		return err
	}
}

// readInput joins args, or reads all of stdin when there are none.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdin == nil {
		return "", errors.New("no text given and no stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func resultMarkdown(res clarity.Result) string {
	var b strings.Builder
	b.WriteString("## What seems to be going on\n\n")
	b.WriteString(res.Issue)
	b.WriteString("\n\n## What seems to be getting in the way\n\n")
	for _, c := range res.Constraints {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString("\n## Next choices to get oriented and moving\n\n")
	for i, c := range res.Choices {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	fmt.Fprintf(&b, "\n_Confidence: **%s**. %s_\n", res.Confidence, res.ConfidenceExplanation)
	return b.String()
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}
