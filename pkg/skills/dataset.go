package skills

import (
	"embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// The classification and localized-description tables are data, not logic:
// they live as YAML files embedded into the binary and are loaded once at
// package init into immutable maps.

//go:embed dataset/kinds.yaml dataset/descriptions_zh.yaml
var datasetFS embed.FS

var (
	skillKinds     = mustLoadTable("dataset/kinds.yaml")
	descriptionsZH = mustLoadTable("dataset/descriptions_zh.yaml")
)

func mustLoadTable(name string) map[string]string {
	raw, err := datasetFS.ReadFile(name)
	if err != nil {
		panic(errors.Wrapf(err, "missing embedded dataset %s", name))
	}

	table := make(map[string]string)
	if err := yaml.Unmarshal(raw, &table); err != nil {
		panic(errors.Wrapf(err, "malformed embedded dataset %s", name))
	}
	return table
}
