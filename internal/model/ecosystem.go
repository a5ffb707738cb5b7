package model

import (
	"encoding/json"
	"fmt"
)

// GoParams are the parameters for initializing a Go module ecosystem.
type GoParams struct {
	Name string `json:"name"`
	Host string `json:"host"`
}

// Module returns the module path in the form "{host}/{name}".
func (p GoParams) Module() string {
	return fmt.Sprintf("%s/%s", p.Host, p.Name)
}

// MavenParams are the parameters for initializing a Maven archetype ecosystem.
type MavenParams struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
}

// EcosystemParams is the tagged-variant parameter set for initializing a
// project's ecosystem tooling.
type EcosystemParams struct {
	Kind  string // "Go" or "Maven"
	Go    *GoParams
	Maven *MavenParams
}

func NewGoEcosystemParams(p GoParams) EcosystemParams {
	return EcosystemParams{Kind: "Go", Go: &p}
}

func NewMavenEcosystemParams(p MavenParams) EcosystemParams {
	return EcosystemParams{Kind: "Maven", Maven: &p}
}

type ecosystemParamsWire struct {
	Go    *GoParams    `json:"Go,omitempty"`
	Maven *MavenParams `json:"Maven,omitempty"`
}

func (p EcosystemParams) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case "Go":
		return json.Marshal(ecosystemParamsWire{Go: p.Go})
	case "Maven":
		return json.Marshal(ecosystemParamsWire{Maven: p.Maven})
	default:
		return nil, NewError(KindInput, fmt.Sprintf("unknown EcosystemParams kind %q", p.Kind))
	}
}

func (p *EcosystemParams) UnmarshalJSON(data []byte) error {
	var wire ecosystemParamsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WrapError(KindDecoding, "decoding EcosystemParams", err)
	}
	switch {
	case wire.Go != nil:
		*p = EcosystemParams{Kind: "Go", Go: wire.Go}
	case wire.Maven != nil:
		*p = EcosystemParams{Kind: "Maven", Maven: wire.Maven}
	default:
		return NewError(KindDecoding, "EcosystemParams has no recognized variant")
	}
	return nil
}

// InitializedGo is the post-initialization state of a Go module ecosystem.
type InitializedGo struct {
	Name string `json:"name"`
	Host string `json:"host"`
}

func (g InitializedGo) Module() string {
	return fmt.Sprintf("%s/%s", g.Host, g.Name)
}

// InitializedMaven is the post-initialization state of a Maven ecosystem.
type InitializedMaven struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
}

// InitializedEcosystem is the tagged-variant result of ecosystem
// initialization.
type InitializedEcosystem struct {
	Kind  string // "Go" or "Maven"
	Go    *InitializedGo
	Maven *InitializedMaven
}

func NewInitializedGoEcosystem(g InitializedGo) InitializedEcosystem {
	return InitializedEcosystem{Kind: "Go", Go: &g}
}

func NewInitializedMavenEcosystem(m InitializedMaven) InitializedEcosystem {
	return InitializedEcosystem{Kind: "Maven", Maven: &m}
}

type initializedEcosystemWire struct {
	Go    *InitializedGo    `json:"Go,omitempty"`
	Maven *InitializedMaven `json:"Maven,omitempty"`
}

func (e InitializedEcosystem) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case "Go":
		return json.Marshal(initializedEcosystemWire{Go: e.Go})
	case "Maven":
		return json.Marshal(initializedEcosystemWire{Maven: e.Maven})
	default:
		return nil, NewError(KindInput, fmt.Sprintf("unknown InitializedEcosystem kind %q", e.Kind))
	}
}

func (e *InitializedEcosystem) UnmarshalJSON(data []byte) error {
	var wire initializedEcosystemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WrapError(KindDecoding, "decoding InitializedEcosystem", err)
	}
	switch {
	case wire.Go != nil:
		*e = InitializedEcosystem{Kind: "Go", Go: wire.Go}
	case wire.Maven != nil:
		*e = InitializedEcosystem{Kind: "Maven", Maven: wire.Maven}
	default:
		return NewError(KindDecoding, "InitializedEcosystem has no recognized variant")
	}
	return nil
}
