// Package profiles persists named host profiles in the init-repo TOML configuration file.
//
// The file also carries application settings read through Viper; Store only
// owns the default_profile key and the hosts table and writes every other
// top-level section back unchanged.
package profiles
