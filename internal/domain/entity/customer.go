package entity

import "time"

// Customer cliente al que se le embarca.
type Customer struct {
	ID                string
	Code              string
	Name              string
	Address           string
	ContactPerson     string
	Phone             string
	Email             string
	DeliveryFrequency string // daily, weekly, ...
	IsActive          bool
	CreatedAt         time.Time
}
