package domain

import "github.com/google/uuid"

type Customer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
