// Package config provides configuration structures and utilities for
// ruleoverview. It defines where the project tree and catalog live, how the
// report is written, and where run history is stored.
package config
