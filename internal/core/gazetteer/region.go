package gazetteer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lueurxax/intel-watch/internal/core/domain"
	"github.com/lueurxax/intel-watch/internal/core/errors"
)

// Region is the on-disk description of the systems on the loaded map.
type Region struct {
	Name    string         `yaml:"region"`
	Systems []RegionSystem `yaml:"systems"`
}

// RegionSystem is one system entry of a region file.
type RegionSystem struct {
	Name string `yaml:"name"`
}

// ParseRegion decodes a YAML region description.
func ParseRegion(data []byte) (*Region, error) {
	var r Region
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode region: %w", err)
	}

	if len(r.Systems) == 0 {
		return nil, fmt.Errorf("region %q: %w", r.Name, errors.ErrEmptyRegion)
	}

	return &r, nil
}

// LoadRegion reads a region file and builds a gazetteer with the default
// ship list and the region's systems.
func LoadRegion(path string) (*Gazetteer, *Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read region file: %w", err)
	}

	region, err := ParseRegion(data)
	if err != nil {
		return nil, nil, err
	}

	return New(DefaultShips(), region.DomainSystems()), region, nil
}

// DomainSystems converts the entries to systems keyed by upper-case name.
func (r *Region) DomainSystems() []*domain.System {
	out := make([]*domain.System, 0, len(r.Systems))
	for _, s := range r.Systems {
		name := strings.ToUpper(strings.TrimSpace(s.Name))
		if name == "" {
			continue
		}

		out = append(out, domain.NewSystem(name))
	}

	return out
}
