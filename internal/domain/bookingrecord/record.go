package bookingrecord

import (
	"time"

	"hotel-checkout/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string { return string(s) }

// Confirmation is what the supplier returned for a successful booking.
type Confirmation struct {
	Code      string `json:"code"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type Policy struct {
	Number   string          `json:"number"`
	Provider string          `json:"provider"`
	Premium  decimal.Decimal `json:"premium"`
	Currency string          `json:"currency"`
	IssuedAt time.Time       `json:"issuedAt"`
}

type Record struct {
	id             uuid.UUID
	attemptID      uuid.UUID
	ownerID        *uuid.UUID
	status         Status
	payload        booking.Payload
	confirmation   Confirmation
	policies       []Policy
	supportHistory []SupportEntry
	version        int32
	lock           *SupportLock
	createdAt      time.Time
	updatedAt      time.Time
}

func NewRecord(attemptID uuid.UUID, ownerID *uuid.UUID, payload booking.Payload, confirmation Confirmation, now time.Time) *Record {
	return &Record{
		id:           uuid.New(),
		attemptID:    attemptID,
		ownerID:      ownerID,
		status:       StatusConfirmed,
		payload:      payload,
		confirmation: confirmation,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}
}

type ReconstructParams struct {
	ID             uuid.UUID
	AttemptID      uuid.UUID
	OwnerID        *uuid.UUID
	Status         Status
	Payload        booking.Payload
	Confirmation   Confirmation
	Policies       []Policy
	SupportHistory []SupportEntry
	Version        int32
	Lock           *SupportLock
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(p ReconstructParams) *Record {
	return &Record{
		id:             p.ID,
		attemptID:      p.AttemptID,
		ownerID:        p.OwnerID,
		status:         p.Status,
		payload:        p.Payload,
		confirmation:   p.Confirmation,
		policies:       p.Policies,
		supportHistory: p.SupportHistory,
		version:        p.Version,
		lock:           p.Lock,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

func (r *Record) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID != nil && *r.ownerID == userID
}

func (r *Record) ID() uuid.UUID                  { return r.id }
func (r *Record) AttemptID() uuid.UUID           { return r.attemptID }
func (r *Record) OwnerID() *uuid.UUID            { return r.ownerID }
func (r *Record) Status() Status                 { return r.status }
func (r *Record) Payload() booking.Payload       { return r.payload }
func (r *Record) Confirmation() Confirmation     { return r.confirmation }
func (r *Record) Policies() []Policy             { return r.policies }
func (r *Record) SupportHistory() []SupportEntry { return r.supportHistory }
func (r *Record) Version() int32                 { return r.version }
func (r *Record) Lock() *SupportLock             { return r.lock }
func (r *Record) CreatedAt() time.Time           { return r.createdAt }
func (r *Record) UpdatedAt() time.Time           { return r.updatedAt }
