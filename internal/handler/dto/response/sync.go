package response

import (
	"time"

	"desayuno/internal/usecase"
)

type SyncItemResponse struct {
	LocalID         string     `json:"localId"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason,omitempty"`
	ServerTimestamp *time.Time `json:"serverTimestamp,omitempty"`
}

type SyncResponse struct {
	Results []SyncItemResponse `json:"results"`
}

func FromSyncResults(results []usecase.SyncItemResult) *SyncResponse {
	items := make([]SyncItemResponse, 0, len(results))
	for _, r := range results {
		items = append(items, SyncItemResponse{
			LocalID:         r.LocalID,
			Status:          r.Status,
			Reason:          r.Reason,
			ServerTimestamp: r.ServerTimestamp,
		})
	}
	return &SyncResponse{Results: items}
}
