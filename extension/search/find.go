// find.go implements the "hive find" command.
//
// Option flags start from the find.* config keys; a flag given on the
// command line overrides its key for this run, and --save-options writes
// the result back. Ctrl-C cancels the walk and keeps what was found.

package search

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/extension"
	"github.com/jpl-au/hive/internal/config"
	"github.com/jpl-au/hive/internal/find"
	"github.com/jpl-au/hive/internal/findall"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/result"
	"github.com/jpl-au/hive/internal/search"
	"github.com/jpl-au/hive/internal/tui"
	"github.com/spf13/cobra"
)

// optionFlags maps boolean flags onto search options.
var optionFlags = []struct {
	name string
	flag find.Options
}{
	{extension.FlagKeys, find.SearchKeys},
	{extension.FlagValues, find.SearchValues},
	{extension.FlagData, find.SearchData},
	{extension.FlagWhole, find.MatchWholeWords},
	{extension.FlagCase, find.MatchCase},
	{extension.FlagStd, find.SearchStdRegistry},
	{extension.FlagReal, find.SearchRealRegistry},
}

func (e *Extension) newFindCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "find [text]",
		Short: "Find keys, value names and value data",
		Long: heredoc.Doc(`
			Searches the key tree depth first and prints each match as it is
			found. A match is a key name (K), a value name (N) or value data
			(D). Each value reports at most one match.

			  hive find acme
			  hive find acme --case --whole
			  hive find acme -k HKCU/Software        # below one key only
			  hive find acme --data=false --real     # names only, REGISTRY too
			  hive find acme --results out.txt       # save for 'hive results'
			  hive find acme --results out.txt --append
			  hive find -i                           # interactive

			Defaults come from the find.* config keys. --save-options stores
			the options of this run as the new defaults.
			Ctrl-C stops the search and keeps the matches found so far.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: e.runFind,
	}
	c.Flags().Bool(extension.FlagKeys, true, "Match key names")
	c.Flags().Bool(extension.FlagValues, true, "Match value names")
	c.Flags().Bool(extension.FlagData, true, "Match value data")
	c.Flags().BoolP(extension.FlagWhole, "w", false, "Match whole words only")
	c.Flags().BoolP(extension.FlagCase, "c", false, "Match case")
	c.Flags().Bool(extension.FlagStd, true, "Search the standard roots")
	c.Flags().Bool(extension.FlagReal, false, "Search the REGISTRY root")
	c.Flags().StringP(extension.FlagKey, "k", "", "Search below this key only")
	c.Flags().Bool(extension.FlagAppend, false, "Keep the matches already in the result file")
	c.Flags().StringP(extension.FlagResults, "r", "", "Result file to load and save")
	c.Flags().StringP(extension.FlagSort, "s", "", "Sort by: path, name, data")
	c.Flags().Bool(extension.FlagDesc, false, "Sort descending")
	c.Flags().Bool(extension.FlagSaveOptions, false, "Store these options as the find defaults")
	c.Flags().BoolP(extension.FlagInteractive, "i", false, "Open the interactive find dialog")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Stop after this many matches")
	_ = c.RegisterFlagCompletionFunc(extension.FlagSort, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"path", "name", "data"}, cobra.ShellCompDirectiveNoFileComp
	})
	return c
}

// settings merges the config defaults with the flags that were given.
func (e *Extension) settings(c *cobra.Command) findall.Settings {
	st := e.cfg.FindSettings()
	for _, of := range optionFlags {
		if c.Flags().Changed(of.name) {
			on, _ := c.Flags().GetBool(of.name)
			st.Options = st.Options.Set(of.flag, on)
		}
	}
	// A selected-key search needs a key, so -k alone decides it.
	key, _ := c.Flags().GetString(extension.FlagKey)
	st.Options = st.Options.Set(find.SearchSelected, key != "")
	if c.Flags().Changed(extension.FlagAppend) {
		st.Append, _ = c.Flags().GetBool(extension.FlagAppend)
	}
	return st
}

func (e *Extension) saver(c *cobra.Command) findall.Saver {
	if on, _ := c.Flags().GetBool(extension.FlagSaveOptions); on {
		return config.Saver{Scope: e.cfg.Scope()}
	}
	return nil
}

func (e *Extension) runFind(c *cobra.Command, args []string) error {
	text := ""
	if len(args) > 0 {
		text = args[0]
	}
	st := e.settings(c)
	start, _ := c.Flags().GetString(extension.FlagKey)
	file, _ := c.Flags().GetString(extension.FlagResults)

	if interactive, _ := c.Flags().GetBool(extension.FlagInteractive); interactive {
		if cmd.JSON() {
			return cmd.PrintJSONError(fmt.Errorf("find: --interactive cannot be used with -o json"))
		}
		err := tui.Run(c.Context(), e.svc, tui.Options{
			Settings: st,
			Text:     text,
			Start:    start,
			Results:  file,
			Saver:    config.Saver{Scope: e.cfg.Scope()},
		})
		log.Event("search:find", "interactive").
			Author(cmd.Author()).
			Key(start).
			Detail("results", file).
			Write(err)
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		return nil
	}

	if text == "" {
		return cmd.PrintJSONError(fmt.Errorf("find: %w", findall.ErrCannotStart))
	}

	opts := search.Options{
		Settings:  st,
		Start:     start,
		Results:   file,
		Saver:     e.saver(c),
		Styled:    cmd.Styled(),
		Streaming: true,
	}
	opts.Desc, _ = c.Flags().GetBool(extension.FlagDesc)
	opts.Limit, _ = c.Flags().GetInt(extension.FlagLimit)
	if s, _ := c.Flags().GetString(extension.FlagSort); s != "" {
		col, err := result.ParseColumn(s)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Sort = &col
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt)
	defer stop()

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	res, err := search.Run(ctx, w, e.svc, text, opts)

	log.Event("search:find", "search").
		Author(cmd.Author()).
		Key(start).
		Count(res.Found).
		Detail("session", res.Session).
		Detail("text", text).
		Detail("options", res.Options).
		Detail("cancelled", res.Cancelled).
		Detail("results", file).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("find %q: %w", text, err))
	}
	if res.Matches == nil {
		res.Matches = []result.Match{}
	}
	return cmd.PrintJSON(res)
}
