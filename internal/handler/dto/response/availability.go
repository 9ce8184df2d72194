package response

import (
	"github.com/jinzhu/copier"

	"table-booking/internal/usecase/queries"
)

type SlotsResponse struct {
	Date       string   `json:"date"`
	Duration   int      `json:"duration"`
	FirstHalf  []string `json:"first_half"`
	SecondHalf []string `json:"second_half"`
	Durations  []int    `json:"durations,omitempty"`
}

func FromSlotsView(v *queries.SlotsView) (*SlotsResponse, error) {
	resp := &SlotsResponse{}
	if err := copier.CopyWithOption(resp, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	// Keep empty buckets as [] on the wire.
	if resp.FirstHalf == nil {
		resp.FirstHalf = []string{}
	}
	if resp.SecondHalf == nil {
		resp.SecondHalf = []string{}
	}
	return resp, nil
}
