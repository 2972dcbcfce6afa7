package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type SiteStatus string

const (
	SiteActive   SiteStatus = "active"
	SiteInactive SiteStatus = "inactive"
)

type Site struct {
	ID          uint64       `json:"id" db:"id"`
	ProjectLead string       `json:"projectLead" db:"project_lead"`
	Address     string       `json:"address" db:"address"`
	Latitude    null.Float64 `json:"latitude" db:"latitude"`
	Longitude   null.Float64 `json:"longitude" db:"longitude"`
	TimeZone    null.String  `json:"timeZone" db:"time_zone"`
	Status      SiteStatus   `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
}
