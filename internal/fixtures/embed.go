// Package fixtures embeds the storefront's sample records. Each YAML file
// holds the documents of one kind, named after the file.
package fixtures

import "embed"

//go:embed *.yaml
var FS embed.FS
