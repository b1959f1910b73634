package graph

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/bonsono/sonolog/pkg/domain"
)

// YAML questionnaire format. Terminal successors are spelled with the
// sentinel names instead of ids:
//
//	start: 0
//	nodes:
//	  - id: 0
//	    kind: yes_no
//	    prompt: "..."
//	    response_yes: "..."
//	    response_no: "..."
//	    next_yes: 1
//	    next_no: end_no_insomnia
//	  - id: 2
//	    kind: multiple_choice
//	    prompt: "..."
//	    options:
//	      - {id: a, label: "...", response: "..."}
//	    next: end

type yamlGraph struct {
	Start *int       `mapstructure:"start"`
	Nodes []yamlNode `mapstructure:"nodes"`
}

type yamlNode struct {
	ID          *int            `mapstructure:"id"`
	Kind        string          `mapstructure:"kind"`
	Prompt      string          `mapstructure:"prompt"`
	ResponseYes string          `mapstructure:"response_yes"`
	ResponseNo  string          `mapstructure:"response_no"`
	Next        *domain.NodeID  `mapstructure:"next"`
	NextYes     *domain.NodeID  `mapstructure:"next_yes"`
	NextNo      *domain.NodeID  `mapstructure:"next_no"`
	Options     []domain.Option `mapstructure:"options"`
}

// ParseYAML reads a questionnaire definition and returns the validated
// graph.
func ParseYAML(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph definition: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse graph YAML: %w", err)
	}

	var def yamlGraph
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &def,
		ErrorUnused: true,
		DecodeHook:  nodeIDHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid graph definition: %w", err)
	}

	start := domain.StartNodeID
	if def.Start != nil {
		start = domain.NodeID(*def.Start)
	}

	nodes := make([]domain.Node, 0, len(def.Nodes))
	for i, yn := range def.Nodes {
		n, err := yn.toDomain()
		if err != nil {
			return nil, fmt.Errorf("node #%d: %w", i, err)
		}
		nodes = append(nodes, n)
	}

	return New(start, nodes)
}

// LoadYAMLFile parses a questionnaire definition from disk.
func LoadYAMLFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph definition: %w", err)
	}
	defer f.Close()
	return ParseYAML(f)
}

func (yn yamlNode) toDomain() (domain.Node, error) {
	if yn.ID == nil {
		return domain.Node{}, fmt.Errorf("missing id")
	}

	kind := domain.NodeKind(yn.Kind)
	if kind == "" {
		kind = domain.KindYesNo
	}

	var route domain.Route
	switch {
	case yn.Next != nil && (yn.NextYes != nil || yn.NextNo != nil):
		return domain.Node{}, fmt.Errorf("'next' and 'next_yes'/'next_no' are mutually exclusive")
	case yn.Next != nil:
		route = domain.FixedNext{Next: *yn.Next}
	case yn.NextYes != nil && yn.NextNo != nil:
		route = domain.ConditionalNext{NextYes: *yn.NextYes, NextNo: *yn.NextNo}
	case yn.NextYes != nil || yn.NextNo != nil:
		return domain.Node{}, fmt.Errorf("'next_yes' and 'next_no' must be declared together")
	default:
		return domain.Node{}, fmt.Errorf("missing successor ('next' or 'next_yes'/'next_no')")
	}

	return domain.Node{
		ID:          domain.NodeID(*yn.ID),
		Kind:        kind,
		Prompt:      yn.Prompt,
		Route:       route,
		ResponseYes: yn.ResponseYes,
		ResponseNo:  yn.ResponseNo,
		Options:     yn.Options,
	}, nil
}

// nodeIDHook maps successor values onto NodeID: plain ints pass
// through, the sentinel names resolve to the terminal ids.
func nodeIDHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(domain.NodeID(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return domain.NodeID(v), nil
	case string:
		switch v {
		case "end":
			return domain.TerminalCompleted, nil
		case "end_no_insomnia":
			return domain.TerminalNoInsomnia, nil
		default:
			return nil, fmt.Errorf("unknown successor %q (expected a node id, 'end' or 'end_no_insomnia')", v)
		}
	default:
		return data, nil
	}
}
