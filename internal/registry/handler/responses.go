package handler

import "ninhub/internal/registry/models"

// CitizenListResponse is the HTTP response for GET /registry/citizens.
type CitizenListResponse struct {
	Citizens []*models.Citizen `json:"citizens"`
	Count    int               `json:"count"`
}

// DeleteResponse acknowledges a removed citizen.
type DeleteResponse struct {
	NIN     string `json:"nin"`
	Deleted bool   `json:"deleted"`
}

func toListResponse(citizens []*models.Citizen) *CitizenListResponse {
	if citizens == nil {
		citizens = []*models.Citizen{}
	}
	return &CitizenListResponse{Citizens: citizens, Count: len(citizens)}
}
