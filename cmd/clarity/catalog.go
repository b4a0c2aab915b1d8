package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/homebridge-ai/clarity/internal/clarity"
	"github.com/homebridge-ai/clarity/internal/onboarding"
)

var categoriesYAML bool

var (
	idStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle = lipgloss.NewStyle().Faint(true)
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the onboarding questions and their options",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, q := range onboarding.Questions() {
			fmt.Fprintf(out, "%s %s\n  %s\n", idStyle.Render(q.ID), dimStyle.Render("("+q.Type+")"), q.Label)
			for _, o := range q.Options {
				fmt.Fprintf(out, "  - %s\n", o)
			}
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the situation categories in declaration order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats := clarity.DefaultRegistry().Categories()
		out := cmd.OutOrStdout()
		if categoriesYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cats); err != nil {
				return err
			}
			return enc.Close()
		}
		for _, c := range cats {
			priority := "-"
			if c.NamesIssue() {
				priority = fmt.Sprint(c.Priority)
			}
			fmt.Fprintf(out, "%s order=%-3d priority=%-3s phrases=%d", idStyle.Width(26).Render(c.ID), c.Order, priority, len(c.Phrases))
			if len(c.Requires) > 0 {
				fmt.Fprintf(out, " requires=%s", strings.Join(c.Requires, ","))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesYAML, "yaml", false, "print the full table as YAML")
}
