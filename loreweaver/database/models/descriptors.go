package models

import (
	"bytes"
	"encoding/json"
)

// RequiredMechanics is the structural pattern an incoming event must satisfy
// for a quest step to fire. EventType is an exact match; DetailsSubset is a
// recursive subset match against the event's details (extra event keys are
// ignored, no type coercion between mismatched JSON types).
type RequiredMechanics struct {
	EventType     string         `json:"event_type"`
	DetailsSubset map[string]any `json:"details_subset,omitempty"`
}

// AbstractGoal is an optional narrative condition beyond the raw mechanics.
// When Enabled is false the goal is trivially satisfied. EvaluationMethod
// selects an entry in the engine's goal registry; "rule_based" evaluates
// Criteria as a subset match over the event details.
type AbstractGoal struct {
	Enabled          bool           `json:"enabled"`
	EvaluationMethod string         `json:"evaluation_method,omitempty"`
	Description      string         `json:"description,omitempty"`
	Criteria         map[string]any `json:"criteria,omitempty"`
}

// ConsequenceSet is a sparse bundle of reward instructions. Any subset of the
// sections may be present; absent sections are skipped.
type ConsequenceSet struct {
	XPAward             *XPAward             `json:"xp_award,omitempty"`
	RelationshipChanges []RelationshipChange `json:"relationship_changes,omitempty"`
	ItemRewards         []ItemReward         `json:"item_rewards,omitempty"`
	WorldStateChanges   []WorldStateChange   `json:"world_state_changes,omitempty"`
}

// IsZero reports whether the set carries no instructions at all.
func (cs ConsequenceSet) IsZero() bool {
	return cs.XPAward == nil &&
		len(cs.RelationshipChanges) == 0 &&
		len(cs.ItemRewards) == 0 &&
		len(cs.WorldStateChanges) == 0
}

type XPAward struct {
	Amount int `json:"amount"`
}

type RelationshipChange struct {
	TargetID   string `json:"target_id"`
	TargetType string `json:"target_type"`
	Delta      int    `json:"delta"`
}

type ItemReward struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type WorldStateChange struct {
	Flag  string `json:"flag"`
	Value any    `json:"value"`
}

// Quest content arrives as JSON from the content pipeline. Descriptors form a
// closed set: unknown keys are a content bug and must fail at decode time
// rather than be silently dropped.

func (rm *RequiredMechanics) UnmarshalJSON(data []byte) error {
	type alias RequiredMechanics
	return strictUnmarshal(data, (*alias)(rm))
}

func (g *AbstractGoal) UnmarshalJSON(data []byte) error {
	type alias AbstractGoal
	return strictUnmarshal(data, (*alias)(g))
}

func (cs *ConsequenceSet) UnmarshalJSON(data []byte) error {
	type alias ConsequenceSet
	return strictUnmarshal(data, (*alias)(cs))
}

func (a *XPAward) UnmarshalJSON(data []byte) error {
	type alias XPAward
	return strictUnmarshal(data, (*alias)(a))
}

func (rc *RelationshipChange) UnmarshalJSON(data []byte) error {
	type alias RelationshipChange
	return strictUnmarshal(data, (*alias)(rc))
}

func (ir *ItemReward) UnmarshalJSON(data []byte) error {
	type alias ItemReward
	return strictUnmarshal(data, (*alias)(ir))
}

func (wc *WorldStateChange) UnmarshalJSON(data []byte) error {
	type alias WorldStateChange
	return strictUnmarshal(data, (*alias)(wc))
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
