package handler

import (
	"ninhub/internal/fraud"
	"ninhub/internal/linkage/models"
)

// RecordListResponse is the HTTP response for the SIM and account listings.
type RecordListResponse struct {
	Domain  models.Domain    `json:"domain"`
	Records []*models.Listing `json:"records"`
	Count   int               `json:"count"`
}

// AnomalyReport is the HTTP response for GET .../anomalies.
type AnomalyReport struct {
	Domain models.Domain        `json:"domain"`
	Alerts []fraud.AnomalyAlert `json:"alerts"`
	Count  int                  `json:"count"`
}

// DeleteResponse acknowledges a removed linkage.
type DeleteResponse struct {
	Domain  models.Domain `json:"domain"`
	Key     string        `json:"key"`
	Deleted bool          `json:"deleted"`
}

func toListResponse(d models.Domain, records []*models.Listing) *RecordListResponse {
	if records == nil {
		records = []*models.Listing{}
	}
	return &RecordListResponse{Domain: d, Records: records, Count: len(records)}
}
