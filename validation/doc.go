// Package validation checks configuration values.
//
// Struct tag validation uses go-playground/validator and reports fields by
// their mapstructure key. Programmatic validation collects errors with a
// fluent builder. Both return INVALID_CONFIG errors whose "fields" detail
// lists every failing field.
//
// # Struct Tag Validation
//
//	type ListConfig struct {
//	    Dir     string `mapstructure:"dir" validate:"required"`
//	    Pattern string `mapstructure:"pattern" validate:"omitempty,glob"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Required("watch.dir", cfg.Dir).
//	    Min("watch.quiet_ms", cfg.QuietMS, 1).
//	    Validate()
package validation
