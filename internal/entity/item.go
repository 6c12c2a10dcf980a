package entity

// Item is an owned upgrade: a catalog id and the level crafted so far.
type Item struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}
