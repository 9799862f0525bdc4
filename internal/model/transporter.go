package model

import "time"

// Transporter represents a bus operating company.  A transporter owns
// a fleet of buses.  This struct corresponds to a row in the
// `transporters` table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – company name, unique among alive transporters.
//  TaxID        – fiscal identifier.
//  ContactName  – optional contact person.
//  ContactPhone – optional contact phone.
//  ContactEmail – optional contact email.
//  IsActive     – soft availability flag.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
//  DeletedAt    – soft-delete timestamp (nil while alive).
type Transporter struct {
	ID           uint64     `json:"id"`                     // transporters.id
	Name         string     `json:"name"`                   // transporters.name
	TaxID        string     `json:"taxId"`                  // transporters.tax_id
	ContactName  *string    `json:"contactName,omitempty"`  // transporters.contact_name (nullable)
	ContactPhone *string    `json:"contactPhone,omitempty"` // transporters.contact_phone (nullable)
	ContactEmail *string    `json:"contactEmail,omitempty"` // transporters.contact_email (nullable)
	IsActive     bool       `json:"isActive"`               // transporters.is_active
	CreatedAt    time.Time  `json:"createdAt"`              // transporters.created_at
	UpdatedAt    time.Time  `json:"updatedAt"`              // transporters.updated_at
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`    // transporters.deleted_at (nullable)
}
