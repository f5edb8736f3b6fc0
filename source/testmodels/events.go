// Package testmodels holds event payloads shared by tests across the module.
package testmodels

import "github.com/go-openapi/strfmt"

type PlayerRegistered struct {

	// Unique identifier for the player.
	// Required: true
	PlayerID *string `json:"PlayerId"`

	// Display name of the player.
	// Required: true
	Name *string `json:"Name"`

	// Timestamp when the registration happened.
	// Required: true
	// Format: date-time
	RegisteredAt *strfmt.DateTime `json:"RegisteredAt"`

	// club code
	ClubCode string `json:"ClubCode,omitempty"`
}

type MatchRecorded struct {

	// Unique identifier for the match.
	// Required: true
	MatchID *string `json:"MatchId"`

	// Identifier of the winning player.
	// Required: true
	WinnerID *string `json:"WinnerId"`

	// Identifier of the losing player.
	// Required: true
	LoserID *string `json:"LoserId"`

	// Game scores, winner first, like "11-7".
	Scores []string `json:"Scores,omitempty"`

	// Timestamp when the match finished.
	// Required: true
	// Format: date-time
	PlayedAt *strfmt.DateTime `json:"PlayedAt"`
}

type RatingAdjusted struct {

	// Identifier of the player whose rating moved.
	// Required: true
	PlayerID *string `json:"PlayerId"`

	// Signed rating change applied.
	// Required: true
	Delta *int64 `json:"Delta"`

	// Rating after the adjustment.
	// Required: true
	NewRating *int64 `json:"NewRating"`

	// Timestamp when the adjustment was applied.
	// Required: true
	// Format: date-time
	AdjustedAt *strfmt.DateTime `json:"AdjustedAt"`
}
