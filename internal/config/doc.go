// Package config loads the warden configuration from
// ~/.config/warden/config.toml.
//
// The log core treats configuration as a read-only collaborator: a small
// TOML file supplies the log directory, the in-memory line cap, the
// history page size, the writer queue bound, and the shutdown drain
// timeout. A missing file or missing fields fall back to defaults rather
// than failing, so a fresh machine runs without any setup.
package config
