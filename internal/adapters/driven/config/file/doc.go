// Package file stores configuration as TOML in ~/.cityfinder/config.toml,
// or under $CITYFINDER_CONFIG_DIR when set.
package file
