package entity

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus tracks a member's participation in a workshop.
type RegistrationStatus string

const (
	// RegistrationStatusRegistered is the initial state after signup.
	RegistrationStatusRegistered RegistrationStatus = "registered"
	// RegistrationStatusAttended is set once the member checked in.
	RegistrationStatusAttended RegistrationStatus = "attended"
	// RegistrationStatusCancelled is set when the member withdrew in time.
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
	// RegistrationStatusRefunded is set when a paid registration was refunded.
	RegistrationStatusRefunded RegistrationStatus = "refunded"
)

// Workshop is a scheduled club event members can register for.
type Workshop struct {
	ID          uuid.UUID // The unique ID for this workshop.
	Title       string    // Display title.
	Description string    // Free-form description shown on the event page.
	Location    string    // Room or venue name.
	StartsAt    time.Time // Scheduled start.
	EndsAt      time.Time // Scheduled end.
	Capacity    int       // Maximum number of registrations.
	PriceCents  int64     // Attendance fee in cents; zero for free workshops.
	CreatedAt   time.Time // Timestamp of when the workshop was created.
}

// Registration links a member to a workshop. Deleting a workshop cascades to
// its registrations; the reverse order is rejected by the backend.
type Registration struct {
	ID          uuid.UUID          // The unique ID for this registration row.
	WorkshopID  uuid.UUID          // The workshop being attended.
	MemberID    uuid.UUID          // The attending member.
	Status      RegistrationStatus // Current participation state.
	CheckInCode string             // Opaque code encoded into the check-in QR.
	CreatedAt   time.Time          // Timestamp of when the registration was created.
}
