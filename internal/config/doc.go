// Package config loads the optional cvgen YAML configuration file.
//
// A config file only tunes defaults; every value can also be set through
// CVGEN_* environment variables or command-line flags, which take priority.
//
//	template:
//	  syntax: jinja
//	output:
//	  workDirName: cv_generation
//	  exportDir: export
//	browser:
//	  renderer: exec
//	  candidates: [chromium, google-chrome]
//	  timeout: 90s
//	pdf:
//	  creator: "cvgen (Chromium)"
package config
