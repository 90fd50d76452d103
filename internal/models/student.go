package models

import "time"

// Student is a self-registered learner identified by PRN.
type Student struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Phone      string    `db:"phone" json:"phone"`
	Email      string    `db:"email" json:"email"`
	PRN        string    `db:"prn" json:"prn"`
	Department string    `db:"department" json:"department"`
	Class      string    `db:"class" json:"class"`
	Division   string    `db:"division" json:"division"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// StudentRegistration is the payload of a student sign-up.
type StudentRegistration struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required,phone_digits"`
	Email      string `json:"email" validate:"required,contains=@"`
	PRN        string `json:"prn" validate:"required"`
	Department string `json:"department" validate:"required"`
	Class      string `json:"class" validate:"required"`
	Division   string `json:"division" validate:"required"`
}
