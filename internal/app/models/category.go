package models

// Category is a topic events are filed under
type Category struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Concerts"`
}
