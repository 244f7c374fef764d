// Package vars loads the variables document a template is rendered against.
//
// The format is chosen by file extension:
//   - .json (and any unknown extension) - encoding/json, integers kept integral
//   - .yaml, .yml - gopkg.in/yaml.v3
//   - .toml - github.com/BurntSushi/toml
//
// Example usage:
//
//	data, err := vars.Load("vars.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := engine.Render(src, data)
//
// TOML datetimes become RFC 3339 strings, which the date helpers accept.
package vars
