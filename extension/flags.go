// flags.go holds the CLI flag names shared by commands, so the name used
// to define a flag and the one used to read it cannot drift apart.
//
// Naming: Flag<PascalCaseName> for the kebab-case flag.

package extension

const (
	// Boolean flags

	FlagAll         = "all"          // Every value of a key
	FlagAppend      = "append"       // Keep previous results
	FlagCase        = "case"         // Match case
	FlagData        = "data"         // Search value data
	FlagDesc        = "desc"         // Descending order
	FlagDryRun      = "dry-run"      // Preview without making changes
	FlagInteractive = "interactive"  // Open the interactive dialog
	FlagKeys        = "keys"         // Search key names
	FlagLocal       = "local"        // Use local scope (gitignored)
	FlagRaw         = "raw"          // Unformatted output
	FlagReal        = "real"         // Search the real view
	FlagRecursive   = "recursive"    // Recursive operation
	FlagSaveOptions = "save-options" // Persist the find options
	FlagShare       = "share"        // Mark as shared (committed)
	FlagStd         = "std"          // Search the standard view
	FlagValues      = "values"       // Search value names
	FlagWhole       = "whole"        // Match whole words only

	// String flags

	FlagKey     = "key"     // Start key
	FlagRange   = "range"   // Index range from:to
	FlagResults = "results" // Result file
	FlagSort    = "sort"    // Sort column
	FlagType    = "type"    // Value type
	FlagUnder   = "under"   // Import below another key

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
