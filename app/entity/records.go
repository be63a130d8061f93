package entity

import "database/sql"

type Student struct {
	ID     uint64
	Name   string
	Email  sql.NullString
	Phone  sql.NullString
	Branch sql.NullString
}

type Company struct {
	ID            uint64
	Name          string
	ContactPerson sql.NullString
	Email         sql.NullString
	Phone         sql.NullString
}

type Internship struct {
	ID          uint64
	Title       string
	CompanyID   sql.NullInt64
	StartDate   sql.NullTime
	EndDate     sql.NullTime
	Stipend     sql.NullFloat64
	Seats       sql.NullInt64
	Description sql.NullString
}

// InternshipView is an internship with its company name denormalized in.
type InternshipView struct {
	Internship
	CompanyName sql.NullString
}

const DefaultApplicationStatus = "Applied"

type Application struct {
	ID           uint64
	StudentID    uint64
	InternshipID uint64
	Status       string
}

type ApplicationView struct {
	Application
	StudentName     sql.NullString
	StudentEmail    sql.NullString
	InternshipTitle sql.NullString
	CompanyName     sql.NullString
}
