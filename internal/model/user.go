// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered marketplace account.
//
// PasswordHash carries json:"-" so the credential can never serialize
// into a response, even when a handler writes a User directly.
//
// TotalSold and TotalBought are denormalized counters maintained
// incrementally by checkout — they are never recomputed from the purchase
// log. The leaderboard reads them directly.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	TotalSold    int       `json:"totalSold"`
	TotalBought  int       `json:"totalBought"`
}
