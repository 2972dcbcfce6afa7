package dto

import "github.com/aarondl/null/v8"

type CreateSiteDTO struct {
	ProjectLead string   `json:"projectLead" validate:"required,max=255"`
	Address     string   `json:"address" validate:"required,max=500"`
	Latitude    *float64 `json:"latitude" validate:"coordinates"`
	Longitude   *float64 `json:"longitude"`
}

type UpdateSiteDTO struct {
	ProjectLead null.String `json:"projectLead" validate:"omitempty,max=255"`
	Address     null.String `json:"address" validate:"omitempty,max=500"`
	Latitude    *float64    `json:"latitude" validate:"coordinates"`
	Longitude   *float64    `json:"longitude"`
	Status      null.String `json:"status" validate:"omitempty,oneof=active inactive"`
}
