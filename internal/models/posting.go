package models

import (
	"strings"
	"time"
)

const (
	JobTypeInternship = "Internship"
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
)

const (
	RemoteRemote = "Remote"
	RemoteHybrid = "Hybrid"
	RemoteOnSite = "On-site"
)

const (
	PlatformLinkedIn  = "LinkedIn"
	PlatformHandshake = "Handshake"
	PlatformIndeed    = "Indeed"
	PlatformGlassdoor = "Glassdoor"
	PlatformOther     = "Other"
)

// DefaultStatus is the workflow tag applied when the caller supplies none.
const DefaultStatus = "Not applied"

// RawFields is whatever an extractor managed to pull out of a posting.
// Empty strings mean the field was not found.
type RawFields struct {
	Title    string
	Company  string
	Location string
	Salary   string
	JobType  string
	Remote   string
	Platform string
	Notes    string
}

// JobPosting is the standardized record handed to storage and output.
// Build it with NewJobPosting; change it with the With* helpers, which
// return a new value.
type JobPosting struct {
	Title     string `json:"title" yaml:"title"`
	Company   string `json:"company" yaml:"company"`
	Location  string `json:"location" yaml:"location"`
	Salary    string `json:"salary" yaml:"salary"`
	JobType   string `json:"job_type" yaml:"job_type"`
	Remote    string `json:"remote" yaml:"remote"`
	Platform  string `json:"platform" yaml:"platform"`
	URL       string `json:"url" yaml:"url"`
	Status    string `json:"status" yaml:"status"`
	Notes     string `json:"notes" yaml:"notes"`
	DateAdded Date   `json:"date_added" yaml:"date_added"`
}

// NewJobPosting maps extractor output onto the fixed record contract.
func NewJobPosting(raw RawFields, url string, status string, added time.Time) JobPosting {
	status = strings.TrimSpace(status)
	if status == "" {
		status = DefaultStatus
	}
	return JobPosting{
		Title:     strings.TrimSpace(raw.Title),
		Company:   strings.TrimSpace(raw.Company),
		Location:  strings.TrimSpace(raw.Location),
		Salary:    strings.TrimSpace(raw.Salary),
		JobType:   strings.TrimSpace(raw.JobType),
		Remote:    strings.TrimSpace(raw.Remote),
		Platform:  strings.TrimSpace(raw.Platform),
		URL:       strings.TrimSpace(url),
		Status:    status,
		Notes:     strings.TrimSpace(raw.Notes),
		DateAdded: NewDate(added),
	}
}

func (p JobPosting) WithTitle(title string) JobPosting {
	p.Title = strings.TrimSpace(title)
	return p
}

func (p JobPosting) WithCompany(company string) JobPosting {
	p.Company = strings.TrimSpace(company)
	return p
}

func (p JobPosting) WithLocation(location string) JobPosting {
	p.Location = strings.TrimSpace(location)
	return p
}

func (p JobPosting) WithJobType(jobType string) JobPosting {
	p.JobType = strings.TrimSpace(jobType)
	return p
}

func (p JobPosting) WithRemote(remote string) JobPosting {
	p.Remote = strings.TrimSpace(remote)
	return p
}

func (p JobPosting) WithSalary(salary string) JobPosting {
	p.Salary = strings.TrimSpace(salary)
	return p
}

func (p JobPosting) WithStatus(status string) JobPosting {
	status = strings.TrimSpace(status)
	if status == "" {
		status = DefaultStatus
	}
	p.Status = status
	return p
}

func (p JobPosting) WithNotes(notes string) JobPosting {
	p.Notes = strings.TrimSpace(notes)
	return p
}

// Columns is the persistence column order.
func Columns() []string {
	return []string{
		"date_added",
		"company",
		"location",
		"title",
		"url",
		"salary",
		"job_type",
		"remote",
		"status",
		"platform",
		"notes",
	}
}

// Row returns the posting's values in Columns order.
func (p JobPosting) Row() []string {
	return []string{
		p.DateAdded.String(),
		p.Company,
		p.Location,
		p.Title,
		p.URL,
		p.Salary,
		p.JobType,
		p.Remote,
		p.Status,
		p.Platform,
		p.Notes,
	}
}
