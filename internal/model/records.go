package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the identity a quote, job or invoice is written against.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
}

func NewCustomer(name, email, phone string) Customer {
	return Customer{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// LineItem is one priced row of a document, already rounded to cents.
type LineItem struct {
	Label  string  `json:"label"`
	Detail string  `json:"detail,omitempty"`
	Amount float64 `json:"amount"`
}

// Dimension is a width x height pair in both unit systems.
type Dimension struct {
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
}

// DimensionSummary describes the artwork, visible and outer sizes.
type DimensionSummary struct {
	Artwork Dimension `json:"artwork"`
	Visible Dimension `json:"visible"`
	Outer   Dimension `json:"outer"`
}

// SelectedNames records the display names of the chosen catalog items, so a
// document stays readable after the catalog changes.
type SelectedNames struct {
	Frame         string   `json:"frame,omitempty"`
	Mats          []string `json:"mats,omitempty"`
	Glazing       string   `json:"glazing,omitempty"`
	PrintMaterial string   `json:"print_material,omitempty"`
}

// Document is the part shared by quotes, jobs and invoices.
type Document struct {
	ID           string           `json:"id"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	CreatedAt    string           `json:"created_at"`
	Currency     string           `json:"currency"`
	Config       Configuration    `json:"config"`
	Costs        CostBreakdown    `json:"costs"`
	LineItems    []LineItem       `json:"line_items"`
	Dimensions   DimensionSummary `json:"dimensions"`
	Names        SelectedNames    `json:"names"`
	Subtotal     float64          `json:"subtotal"`
	Tax          float64          `json:"tax"`
	Total        float64          `json:"total"`
	Notes        string           `json:"notes,omitempty"`
}

// Quote is an offer sent to a customer.
type Quote struct {
	Document
	ValidUntil string `json:"valid_until"`
}

// RecordID satisfies the store key contract.
func (q Quote) RecordID() string { return q.ID }

// JobStatus tracks a job through the workshop.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobInProgress JobStatus = "in_progress"
	JobReady      JobStatus = "ready"
	JobCollected  JobStatus = "collected"
)

// ChecklistItem is one workshop step on a job ticket.
type ChecklistItem struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// Job is a work order for the workshop.
type Job struct {
	Document
	Status    JobStatus       `json:"status"`
	Checklist []ChecklistItem `json:"checklist"`
	DueDate   string          `json:"due_date,omitempty"`
}

func (j Job) RecordID() string { return j.ID }

// Invoice is a bill issued to a customer.
type Invoice struct {
	Document
	Number  string `json:"number"`
	DueDate string `json:"due_date"`
	Paid    bool   `json:"paid"`
}

func (i Invoice) RecordID() string { return i.ID }

func (c Customer) RecordID() string { return c.ID }
