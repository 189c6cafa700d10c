package models

// Course is a single catalog entry. The id is assigned by the store on first
// save and is immutable afterwards.
type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}
