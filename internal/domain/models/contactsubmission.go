// internal/domain/models/contactsubmission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery states of a contact submission.
const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
	DeliveryFailed    = "failed"
)

// Email states of a contact submission.
const (
	EmailPending = "pending"
	EmailSent    = "sent"
	EmailSkipped = "skipped" // mailer not configured
	EmailFailed  = "failed"
)

// ContactSubmission journals one contact-form enquiry and what happened
// to it. The CMS collection remains the system of record.
type ContactSubmission struct {
	ID          primitive.ObjectID `bson:"_id"`
	Reference   string             `bson:"reference"` // uuid shown to the visitor
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	CountryName string             `bson:"country_name"`
	CountryCode string             `bson:"country_code"`
	Phone       string             `bson:"phone"` // normalized, e.g. +447700900123
	Message     string             `bson:"message"`
	ClientIP    string             `bson:"client_ip"`

	Delivery  string `bson:"delivery"`
	CMSItemID string `bson:"cms_item_id,omitempty"`
	Error     string `bson:"error,omitempty"`

	EmailStatus string     `bson:"email_status"`
	EmailedAt   *time.Time `bson:"emailed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
