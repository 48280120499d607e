package prefabs

import "gopkg.in/yaml.v3"

// DecodeComponentSpec converts loosely typed props (level entity props, YAML
// maps) into a typed spec by round-tripping them through YAML.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// PlatformSpec is the prop set of a "platform" level entity. A platform with
// a nonzero speed shuttles between its tile and (ToX, ToY).
type PlatformSpec struct {
	ID    string  `yaml:"id"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	ToX   float64 `yaml:"to_x"`
	ToY   float64 `yaml:"to_y"`
	Speed float64 `yaml:"speed"`
}

// SpawnSpec is the prop set of "player" and "walker" level entities.
type SpawnSpec struct {
	Spec string `yaml:"spec"`
}
