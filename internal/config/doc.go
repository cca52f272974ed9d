// Package config provides runtime configuration for TrustLens: the
// flat Config struct populated from CLI flags and the optional
// .trustlens YAML file with user settings and extra keyword rules.
package config
