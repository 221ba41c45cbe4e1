package request

import "hotel-checkout/internal/domain/bookingrecord"

type GuestNameRequest struct {
	RoomIndex  int     `json:"roomIndex" binding:"min=0"`
	GuestIndex int     `json:"guestIndex" binding:"min=0"`
	FirstName  *string `json:"firstName,omitempty" binding:"omitempty,max=100"`
	LastName   *string `json:"lastName,omitempty" binding:"omitempty,max=100"`
}

type SupportEditRequest struct {
	Guests []GuestNameRequest `json:"guests,omitempty" binding:"dive"`
	Note   *string            `json:"note,omitempty" binding:"omitempty,max=1000"`
	Cancel bool               `json:"cancel"`
	Reason string             `json:"reason,omitempty" binding:"max=500"`
}

func (r SupportEditRequest) ToDomain() bookingrecord.SupportEdit {
	edit := bookingrecord.SupportEdit{
		Note:   r.Note,
		Cancel: r.Cancel,
		Reason: r.Reason,
	}
	for _, g := range r.Guests {
		edit.GuestNames = append(edit.GuestNames, bookingrecord.GuestNameChange{
			RoomIndex:  g.RoomIndex,
			GuestIndex: g.GuestIndex,
			FirstName:  g.FirstName,
			LastName:   g.LastName,
		})
	}
	return edit
}
