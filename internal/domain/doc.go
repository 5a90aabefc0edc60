// Package domain defines the core entities of the language-learning
// application and their validation rules. Entities are plain structs with
// constructors that assign IDs and timestamps; persistence is handled by
// the store packages.
package domain
