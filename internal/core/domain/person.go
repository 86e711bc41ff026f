package domain

import "time"

// Person is a staff member tracked by the attendance system. Attendance
// records reference persons but are owned by the attendance subsystem.
type Person struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	DocumentID   string `json:"document_id" bson:"document_id"`
	FullName     string `json:"full_name" bson:"full_name"`
	Email        string `json:"email" bson:"email"`
	Admin        bool   `json:"admin" bson:"admin"`
	PasswordHash string `json:"-" bson:"password_hash,omitempty"`

	PasswordResetToken     string    `json:"-" bson:"password_reset_token,omitempty"`
	PasswordResetExpiresAt time.Time `json:"-" bson:"password_reset_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// FacialEncoding stores one embedding vector for a person. A person may
// enroll several encodings; ambiguity between them is resolved at match
// time, not at write time.
type FacialEncoding struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PersonID  string    `json:"person_id" bson:"person_id"`
	Embedding []float64 `json:"embedding" bson:"embedding"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
