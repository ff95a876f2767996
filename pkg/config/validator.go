package config

import "github.com/go-playground/validator/v10"

// RegisterCustomValidators registers cross-field rules
func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterStructValidation(validateUsersConfig, UsersConfig{})
}

// validateUsersConfig rejects a default page size above the maximum.
func validateUsersConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(UsersConfig)
	if !ok {
		return
	}
	if cfg.PerPage > cfg.MaxPerPage {
		sl.ReportError(cfg.PerPage, "PerPage", "per_page", "ltefield", "MaxPerPage")
	}
}
