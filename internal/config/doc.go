// Package config loads the dirdocs yaml configuration and installs the
// default config and prompt template on first run. A missing config
// file is not an error; everything has a working default.
package config
