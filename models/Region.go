package models

// Region is a (city, state) pair used to scope feeds and search geographically.
// Values are stored lowercased so downstream exact-match queries behave
// consistently regardless of how the client typed them.
type Region struct {
	City  string `json:"city" bson:"city"`
	State string `json:"state" bson:"state"`
}
