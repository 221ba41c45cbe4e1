package request

type PrebookRoomRequest struct {
	RoomID  string `json:"roomId" binding:"required"`
	RateKey string `json:"rateKey" binding:"required"`
}

type PrebookRequest struct {
	SessionID string               `json:"sessionId,omitempty"`
	HotelCode string               `json:"hotelCode" binding:"required"`
	GroupCode string               `json:"groupCode" binding:"required"`
	CheckIn   string               `json:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut  string               `json:"checkOut" binding:"required,datetime=2006-01-02"`
	Rooms     []PrebookRoomRequest `json:"rooms" binding:"required,min=1,max=9,dive"`
}

func (r PrebookRequest) RateKeys() []string {
	keys := make([]string, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		keys = append(keys, room.RateKey)
	}
	return keys
}
