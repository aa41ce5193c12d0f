// Copyright (c) 2026 Keymaster Team
// devcheck - local development environment checker
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/toeirei/devcheck/core/model"
	"github.com/toeirei/devcheck/core/sshaudit"
	"github.com/toeirei/devcheck/internal/i18n"
	"golang.org/x/term"
)

// renderer writes human readable reports. Colors follow the capabilities of
// the output; tables are capped at the terminal width when writing to a TTY.
type renderer struct {
	w     io.Writer
	width int

	title   lipgloss.Style
	heading lipgloss.Style
	border  lipgloss.Style
	cell    lipgloss.Style
	status  map[model.Status]lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	lr := lipgloss.NewRenderer(w)
	r := &renderer{
		w:       w,
		title:   lr.NewStyle().Bold(true).MarginBottom(1),
		heading: lr.NewStyle().Bold(true).Underline(true),
		border:  lr.NewStyle().Foreground(lipgloss.Color("8")),
		cell:    lr.NewStyle().Padding(0, 1),
		status: map[model.Status]lipgloss.Style{
			model.StatusOK:      lr.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("2")),
			model.StatusMissing: lr.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("1")),
			model.StatusError:   lr.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("1")).Bold(true),
			model.StatusWarning: lr.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("3")),
			model.StatusInfo:    lr.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("4")),
		},
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			r.width = width
		}
	}
	return r
}

func statusLabel(s model.Status) string {
	return i18n.T("status." + strings.ToLower(string(s)))
}

func (r *renderer) table(headers []string, rows [][]string, style func(row, col int) lipgloss.Style) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.cell.Bold(true)
			}
			if style != nil {
				return style(row, col)
			}
			return r.cell
		})
	if r.width > 0 {
		t = t.Width(r.width)
	}
	return t.Render()
}

// checks renders checks grouped by category, in the order given, followed
// by the summary.
func (r *renderer) checks(checks []model.Check, sum model.Summary) {
	fmt.Fprintln(r.w, r.title.Render(i18n.T("report.title")))

	var categories []string
	for _, c := range checks {
		if !lo.Contains(categories, c.Category) {
			categories = append(categories, c.Category)
		}
	}
	byCategory := lo.GroupBy(checks, func(c model.Check) string { return c.Category })

	headers := []string{i18n.T("report.col.item"), i18n.T("report.col.status"), i18n.T("report.col.details")}
	for _, cat := range categories {
		items := byCategory[cat]
		rows := lo.Map(items, func(c model.Check, _ int) []string {
			return []string{c.Item, statusLabel(c.Status), c.Details}
		})
		fmt.Fprintln(r.w, r.heading.Render(cat))
		fmt.Fprintln(r.w, r.table(headers, rows, func(row, col int) lipgloss.Style {
			if col == 1 && row >= 0 && row < len(items) {
				return r.status[items[row].Status]
			}
			return r.cell
		}))
		fmt.Fprintln(r.w)
	}

	fmt.Fprintln(r.w, r.heading.Render(i18n.T("report.summary")))
	fmt.Fprintln(r.w, "  "+i18n.T("report.total", sum.Total))
	fmt.Fprintln(r.w, "  "+r.status[model.StatusOK].Render(i18n.T("report.passed", sum.Passed)))
	fmt.Fprintln(r.w, "  "+r.status[model.StatusError].Render(i18n.T("report.failed", sum.Failed)))
	fmt.Fprintln(r.w, "  "+r.status[model.StatusWarning].Render(i18n.T("report.warnings", sum.Warnings)))
}

// ssh renders an SSH analysis report.
func (r *renderer) ssh(rep sshaudit.Report) {
	fmt.Fprintln(r.w, r.title.Render(i18n.T("ssh.title", rep.KeyRoot)))
	fmt.Fprintln(r.w, i18n.T("ssh.known_hosts", len(rep.KnownHosts), rep.MalformedKnownHosts))
	fmt.Fprintln(r.w, i18n.T("ssh.host_blocks", len(rep.HostBlocks)))
	fmt.Fprintln(r.w)

	if rep.Fatal != "" {
		fmt.Fprintln(r.w, r.status[model.StatusError].Render(i18n.T("ssh.fatal", rep.Fatal)))
	} else if len(rep.KeyGroups) == 0 {
		fmt.Fprintln(r.w, i18n.T("ssh.no_keys"))
	} else {
		headers := []string{
			i18n.T("ssh.col.name"), i18n.T("ssh.col.algorithm"), i18n.T("ssh.col.bits"),
			i18n.T("ssh.col.verdict"), i18n.T("ssh.col.fingerprint"),
		}
		rows := lo.Map(rep.KeyGroups, func(g model.KeyPairGroup, _ int) []string {
			return []string{g.Name(rep.KeyRoot), g.Algorithm.String(), g.BitLength.String(), string(g.Verdict), g.Fingerprint}
		})
		fmt.Fprintln(r.w, r.table(headers, rows, func(row, col int) lipgloss.Style {
			if col == 3 && row >= 0 && row < len(rep.KeyGroups) {
				if rep.KeyGroups[row].Verdict.NeedsAttention() {
					return r.status[model.StatusWarning]
				}
				return r.status[model.StatusOK]
			}
			return r.cell
		}))
		for _, g := range rep.KeyGroups {
			for _, n := range g.Notes {
				fmt.Fprintf(r.w, "  %s: %s\n", g.Name(rep.KeyRoot), n)
			}
		}
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.heading.Render(i18n.T("ssh.warnings")))
		for _, w := range rep.Warnings {
			fmt.Fprintln(r.w, "  "+r.status[model.StatusWarning].Render(w))
		}
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, statusLabel(rep.Status()))
}

// hostBlocks lists the config blocks that apply to host with their settings.
func (r *renderer) hostBlocks(host string, blocks []model.HostBlock) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.heading.Render(i18n.T("ssh.host_match", host)))
	for _, b := range blocks {
		fmt.Fprintf(r.w, "  Host %s (line %d)\n", strings.Join(b.Patterns, " "), b.Line)
		keys := lo.Keys(b.Settings)
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(r.w, "    %s %s\n", k, b.Settings[k])
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
