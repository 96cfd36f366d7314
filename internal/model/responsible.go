package model

import "time"

// Responsible is the parent or guardian a monthly package is billed to.
type Responsible struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Phone     string    `json:"telefone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
