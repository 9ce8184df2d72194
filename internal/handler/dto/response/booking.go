package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
)

type TableResponse struct {
	ID          string `json:"id"`
	TableNumber int    `json:"table_number"`
	Seats       int    `json:"seats"`
}

// BookingResponse is returned after a booking is created or edited.
type BookingResponse struct {
	GroupID     string          `json:"group_id"`
	CustomerID  string          `json:"customer_id"`
	BookingDate string          `json:"booking_date"`
	ServiceDate string          `json:"service_date"`
	Time        string          `json:"time"`
	PartySize   int             `json:"party_size"`
	Duration    int             `json:"duration"`
	Status      string          `json:"status"`
	Tables      []TableResponse `json:"tables" copier:"-"`
}

type BookingGroupResponse struct {
	GroupID        string   `json:"group_id"`
	CustomerID     string   `json:"customer_id"`
	CustomerUserID *string  `json:"customer_user_id,omitempty"`
	CustomerName   string   `json:"customer_name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email,omitempty"`
	BookingDate    string   `json:"booking_date"`
	ServiceDate    string   `json:"service_date"`
	BookingTime    string   `json:"booking_time"`
	Duration       int      `json:"duration"`
	PartySize      int      `json:"party_size"`
	TableNumbers   string   `json:"table_numbers"`
	TableIDs       []string `json:"table_ids"`
	Status         string   `json:"status"`
	CreatedAt      int64    `json:"created_at"`
}

var copyOpts = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: schedule.Date{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(schedule.Date).String(), nil
			},
		},
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
	},
}

func FromTableViews(views []queries.TableView) []TableResponse {
	out := make([]TableResponse, len(views))
	for i, v := range views {
		out[i] = TableResponse{ID: v.ID.String(), TableNumber: v.TableNumber, Seats: v.Seats}
	}
	return out
}

func FromBookingResult(r *commands.BookingResult) (*BookingResponse, error) {
	resp := &BookingResponse{}
	if err := copier.CopyWithOption(resp, r, copyOpts); err != nil {
		return nil, err
	}
	resp.Status = queries.StatusConfirmed
	resp.Tables = FromTableViews(r.Tables)
	return resp, nil
}

func FromBookingGroupView(v *queries.BookingGroupView) *BookingGroupResponse {
	resp := &BookingGroupResponse{
		GroupID:      v.GroupID.String(),
		CustomerID:   v.CustomerID.String(),
		CustomerName: v.CustomerName,
		Phone:        v.Phone,
		Email:        v.Email,
		BookingDate:  v.BookingDate,
		ServiceDate:  v.ServiceDate,
		BookingTime:  v.BookingTime,
		Duration:     v.Duration,
		PartySize:    v.PartySize,
		TableNumbers: v.TableNumbers,
		TableIDs:     make([]string, len(v.TableIDs)),
		Status:       v.Status,
		CreatedAt:    v.CreatedAt.Unix(),
	}
	if v.CustomerUserID != nil {
		uid := v.CustomerUserID.String()
		resp.CustomerUserID = &uid
	}
	for i, id := range v.TableIDs {
		resp.TableIDs[i] = id.String()
	}
	return resp
}

func FromBookingGroupViews(views []*queries.BookingGroupView) []*BookingGroupResponse {
	out := make([]*BookingGroupResponse, len(views))
	for i, v := range views {
		out[i] = FromBookingGroupView(v)
	}
	return out
}
