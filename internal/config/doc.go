// Package config defines metrixbot's runtime settings: the series,
// scheduling, HTTP and publishing options. It loads the optional
// .metrixbot.yaml file and resolves the Facebook credentials from the
// environment.
package config
