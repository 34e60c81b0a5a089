// Package config loads and validates recache's configuration.
//
// Configuration is discovered from recache.toml, recache.yaml/.yml, or
// recache.json in the current directory, merged over built-in defaults,
// and then overridden by RECACHE_* environment variables. The recognized
// recognized options cover the core build behavior (entries, verbose,
// loops) plus the ambient options a runnable tool needs (search roots,
// output directory, the resolver's fixed prefix list, the ignore-list and
// not-found report paths, and a pinnable clock for reproducible builds).
package config
