package entities

import "time"

type AuditLog struct {
	ID          uint64    `json:"id" db:"id"`
	Actor       string    `json:"actor" db:"actor"`
	Action      string    `json:"action" db:"action"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
