package model

import "time"

// Seat describes a physical study seat. Seats are uniquely identified
// by their room name and label. They are administrative reference
// data: created by seeding, rarely mutated afterwards.
//
// Fields:
//  ID          – primary key identifier.
//  RoomName    – study room the seat belongs to.
//  SeatLabel   – label of the seat within the room (e.g. "A1").
//  IsAvailable – whether the seat may be booked at all.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Seat struct {
	ID          uint64    // seats.id
	RoomName    string    // seats.room_name
	SeatLabel   string    // seats.seat_label
	IsAvailable bool      // seats.is_available
	CreatedAt   time.Time // seats.created_at
	UpdatedAt   time.Time // seats.updated_at
}
