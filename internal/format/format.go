// Package format renders keys, values and find results for the terminal.
//
// Commands produce data; this package lays it out. Plain output is
// tab-free aligned text so it pipes cleanly. Styled output adds colour
// with lipgloss and is only used when stdout is a terminal.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jpl-au/hive/internal/path"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/store"
)

var (
	styleKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	styleName   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	styleData   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	styleHeader = lipgloss.NewStyle().Bold(true)
)

// maxData is the widest data column before it is cut with an ellipsis.
const maxData = 60

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// Glyph is the one-character marker for a match kind: K for a key, N for a
// value name and D for value data.
func Glyph(k result.Kind, styled bool) string {
	var g string
	var st lipgloss.Style
	switch k {
	case result.KindName:
		g, st = "N", styleName
	case result.KindData:
		g, st = "D", styleData
	default:
		g, st = "K", styleKey
	}
	if styled {
		return st.Render(g)
	}
	return g
}

func clip(s string, n int) string {
	if n <= 3 || len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// Results prints matches as an indexed table: index, kind glyph, path,
// name and data. Indexes are the ones results commands accept.
func Results(w io.Writer, ms []result.Match, styled bool) error {
	return ResultsAt(w, ms, 0, styled)
}

// ResultsAt is Results for a slice of a larger set whose first row has
// index first.
func ResultsAt(w io.Writer, ms []result.Match, first int, styled bool) error {
	if len(ms) == 0 {
		return nil
	}
	idxW := len(fmt.Sprint(first + len(ms) - 1))
	pathW, nameW := len("PATH"), len("NAME")
	for _, m := range ms {
		pathW = max(pathW, len(m.Path))
		nameW = max(nameW, len(m.ColumnText(result.ColumnName)))
	}

	header := fmt.Sprintf("%*s  %s  %s  %s  %s", idxW, "#", " ", pad("PATH", pathW), pad("NAME", nameW), "DATA")
	if styled {
		header = styleHeader.Render(header)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(header, " ")); err != nil {
		return err
	}
	for i, m := range ms {
		line := fmt.Sprintf("%*d  %s  %s  %s  %s", idxW, first+i, Glyph(m.Kind(), styled),
			pad(m.Path, pathW), pad(m.ColumnText(result.ColumnName), nameW),
			clip(m.Data, maxData))
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// Match prints one match in the streaming form used while a find runs.
func Match(w io.Writer, m result.Match, styled bool) error {
	var b strings.Builder
	b.WriteString(Glyph(m.Kind(), styled))
	b.WriteString("  ")
	b.WriteString(m.Path)
	if m.Kind() != result.KindKey {
		name := m.ColumnText(result.ColumnName)
		if name == "" {
			name = result.DefaultValueName
		}
		b.WriteString("  [" + name + "]")
	}
	if m.Data != "" {
		b.WriteString("  " + clip(m.Data, maxData))
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

// Listing prints the subkeys of a key, each with a trailing separator,
// followed by a NAME TYPE DATA table of its values.
func Listing(w io.Writer, keys []store.Key, vals []store.Value, styled bool) error {
	for _, k := range keys {
		name := k.Name + path.Sep
		if styled {
			name = styleKey.Render(name)
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	if len(vals) == 0 {
		return nil
	}
	if len(keys) > 0 {
		fmt.Fprintln(w)
	}
	nameW, typeW := len("NAME"), len("TYPE")
	for _, v := range vals {
		nameW = max(nameW, len(valueName(v.Name)))
		typeW = max(typeW, len(v.Type))
	}
	header := fmt.Sprintf("%s  %s  %s", pad("NAME", nameW), pad("TYPE", typeW), "DATA")
	if styled {
		header = styleHeader.Render(header)
	}
	fmt.Fprintln(w, header)
	for _, v := range vals {
		name := pad(valueName(v.Name), nameW)
		if styled && v.Name == "" {
			name = styleMuted.Render(name)
		}
		line := fmt.Sprintf("%s  %s  %s", name, pad(v.Type, typeW), clip(v.Data, maxData))
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func valueName(n string) string {
	if n == "" {
		return result.DefaultValueName
	}
	return n
}

// Tree prints the keys below root as an indented tree.
func Tree(w io.Writer, root string, keys []store.Key) error {
	type node struct {
		name     string
		children map[string]*node
	}
	top := &node{children: map[string]*node{}}
	for _, k := range keys {
		rel := strings.TrimPrefix(k.Path[len(root):], path.Sep)
		cur := top
		for _, part := range strings.Split(rel, path.Sep) {
			next := cur.children[strings.ToLower(part)]
			if next == nil {
				next = &node{name: part, children: map[string]*node{}}
				cur.children[strings.ToLower(part)] = next
			}
			cur = next
		}
	}

	fmt.Fprintln(w, root)
	var walk func(n *node, prefix string)
	walk = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for k := range n.children {
			names = append(names, k)
		}
		sort.Strings(names)
		for i, k := range names {
			child := n.children[k]
			last := i == len(names)-1
			connector, next := "├── ", "│   "
			if last {
				connector, next = "└── ", "    "
			}
			fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.name)
			walk(child, prefix+next)
		}
	}
	walk(top, "")
	return nil
}

// Value prints one value as "name (type): data".
func Value(w io.Writer, v store.Value) error {
	_, err := fmt.Fprintf(w, "%s (%s): %s\n", valueName(v.Name), v.Type, v.Data)
	return err
}

// Stats prints database statistics.
func Stats(w io.Writer, s store.Stats, file int64) error {
	newest := "-"
	if s.Newest > 0 {
		newest = time.Unix(s.Newest, 0).Format("2006-01-02 15:04")
	}
	_, err := fmt.Fprintf(w, "keys:     %d\nvalues:   %d\ndata:     %s\nfile:     %s\nchanged:  %s\n",
		s.Keys, s.Values, humanSize(s.DataBytes), humanSize(file), newest)
	return err
}
