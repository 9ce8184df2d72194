package request

import (
	"github.com/google/uuid"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/slot"
	"table-booking/internal/usecase/commands"
)

type CreateBookingRequest struct {
	Date      string      `json:"date" binding:"required"`
	Time      string      `json:"time" binding:"required"`
	PartySize int         `json:"party_size" binding:"required,min=1"`
	Duration  int         `json:"duration" binding:"omitempty,min=0"`
	FirstName string      `json:"first_name" binding:"required,max=100"`
	LastName  string      `json:"last_name" binding:"max=100"`
	Phone     string      `json:"phone" binding:"required,max=32"`
	Email     string      `json:"email" binding:"omitempty,email,max=254"`
	DialCode  string      `json:"dial_code" binding:"omitempty,max=6"`
	TableIDs  []uuid.UUID `json:"table_ids" binding:"omitempty,max=5"`
}

func (r *CreateBookingRequest) ToInput(mode slot.Mode, userID *uuid.UUID) (commands.CreateBookingInput, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	return commands.CreateBookingInput{
		Mode:      mode,
		UserID:    userID,
		Date:      date,
		Time:      r.Time,
		PartySize: r.PartySize,
		Duration:  r.Duration,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		DialCode:  r.DialCode,
		TableIDs:  r.TableIDs,
	}, nil
}

// UpdateBookingRequest: omitted fields keep their stored value.
type UpdateBookingRequest struct {
	Date      *string     `json:"date"`
	Time      *string     `json:"time"`
	PartySize *int        `json:"party_size" binding:"omitempty,min=1"`
	Duration  *int        `json:"duration" binding:"omitempty,min=1"`
	TableIDs  []uuid.UUID `json:"table_ids" binding:"omitempty,max=5"`
}

func (r *UpdateBookingRequest) ToInput() (commands.UpdateBookingInput, error) {
	in := commands.UpdateBookingInput{
		Time:      r.Time,
		PartySize: r.PartySize,
		Duration:  r.Duration,
		TableIDs:  r.TableIDs,
	}
	if r.Date != nil {
		date, err := schedule.ParseDate(*r.Date)
		if err != nil {
			return commands.UpdateBookingInput{}, err
		}
		in.Date = &date
	}
	return in, nil
}
