// Package config loads seqkit application configuration.
//
// A YAML file and an optional .env file are located in standard places
// (or given explicitly), read through an afero.Fs, and merged with the
// process environment by Viper. Environment variables override file values;
// LOGGING_LEVEL sets logging.level.
//
// # Usage
//
//	var cfg AppConfig
//	if err := config.LoadConfig("seqdemo", &cfg); err != nil {
//	    return err
//	}
package config
