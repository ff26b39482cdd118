package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseReview is an unmatched input queued for a human to look at, with
// the near-miss suggestions the fuzzy lookup produced.
type ParseReview struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Input       string             `bson:"input" json:"input"`                               // Raw input text
	Command     string             `bson:"command" json:"command"`                           // Entry point that rejected it
	ASCIIFolded string             `bson:"ascii_folded" json:"ascii_folded"`                 // Input transliterated to ASCII
	Suggestions []string           `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Resolution  string             `bson:"resolution,omitempty" json:"resolution,omitempty"` // Reviewer note, usually the alias added
	ReviewerID  *string            `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewedAt  *time.Time         `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Review status constants
const (
	ReviewStatusPending  = "pending"
	ReviewStatusResolved = "resolved"
	ReviewStatusIgnored  = "ignored"
)

// NewParseReview queues an unmatched input.
func NewParseReview(input, command, folded string, suggestions []string) *ParseReview {
	return &ParseReview{
		Input:       input,
		Command:     command,
		ASCIIFolded: folded,
		Suggestions: suggestions,
		Status:      ReviewStatusPending,
		CreatedAt:   time.Now(),
	}
}

// Resolve marks the entry handled, recording what the reviewer did.
func (pr *ParseReview) Resolve(reviewerID, resolution string) {
	pr.Status = ReviewStatusResolved
	pr.Resolution = resolution
	pr.ReviewerID = &reviewerID
	now := time.Now()
	pr.ReviewedAt = &now
}

// Ignore marks the entry as noise.
func (pr *ParseReview) Ignore(reviewerID string) {
	pr.Status = ReviewStatusIgnored
	pr.ReviewerID = &reviewerID
	now := time.Now()
	pr.ReviewedAt = &now
}
