package domain

import "time"

// Project is a single portfolio work sample. It is storage-agnostic and used
// across repository, service and HTTP layers.
type Project struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Category    string    `json:"category" firestore:"category"`
	Tags        []string  `json:"tags" firestore:"tags"`
	Link        string    `json:"link,omitempty" firestore:"link"`
	Client      string    `json:"client,omitempty" firestore:"client"`
	Year        string    `json:"year" firestore:"year"`
	Role        string    `json:"role" firestore:"role"`
	Challenge   string    `json:"challenge" firestore:"challenge"`
	Solution    string    `json:"solution" firestore:"solution"`
	ImageURL    string    `json:"imageUrl" firestore:"imageUrl"`
	Featured    bool      `json:"featured" firestore:"featured"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Fields carries the caller-settable part of a project. The store owns
// ID, ImageURL and both timestamps.
type Fields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	Client      string   `json:"client"`
	Year        string   `json:"year"`
	Role        string   `json:"role"`
	Challenge   string   `json:"challenge"`
	Solution    string   `json:"solution"`
	Featured    bool     `json:"featured"`
}

// Categories is the fixed set a project may belong to.
var Categories = []string{"Web Design", "Mobile App", "Branding", "UI/UX", "Other"}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
