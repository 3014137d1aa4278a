package server

import (
	"tuneslot/internal/lesson"
)

// RegisterValidators installs the custom binding tags request structs rely
// on. Safe to call more than once.
func RegisterValidators() {
	lesson.RegisterRequestValidators()
}
