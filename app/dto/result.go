package dto

import "github.com/vibast-solutions/ms-go-internship/app/entity"

// DashboardResult is the role-dependent data set shown on the index page.
type DashboardResult struct {
	Role         entity.Role
	Students     []*entity.Student
	Companies    []*entity.Company
	Internships  []*entity.InternshipView
	Applications []*entity.ApplicationView
}

type ProfileResult struct {
	Role    entity.Role
	Student *entity.Student
	Company *entity.Company
}

type TableOverview struct {
	Table   string
	Rows    int64
	Columns []entity.ColumnInfo
}

// TableBrowse is one table of the database browser page.
type TableBrowse struct {
	TableOverview
	Sample *entity.ResultSet
}

type LabExample struct {
	Name  string
	Query string
}
