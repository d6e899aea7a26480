// Package all imports all core hive extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/hive/extension/core"
	_ "github.com/jpl-au/hive/extension/keys"
	_ "github.com/jpl-au/hive/extension/results"
	_ "github.com/jpl-au/hive/extension/search"
)
