package models

// Admission statuses.
const (
	AdmissionPending  = "pending"
	AdmissionApproved = "approved"
	AdmissionRejected = "rejected"
)

// Admission is an application for a place at the school. Status and Notes
// are set by admins only.
type Admission struct {
	Meta `bson:",inline"`

	StudentName    string `bson:"studentName" json:"studentName" validate:"required,max=120"`
	DateOfBirth    string `bson:"dateOfBirth" json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender         string `bson:"gender,omitempty" json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	ClassApplying  string `bson:"classApplying" json:"classApplying" validate:"required,max=40"`
	PreviousSchool string `bson:"previousSchool,omitempty" json:"previousSchool,omitempty"`

	FatherName         string `bson:"fatherName,omitempty" json:"fatherName,omitempty"`
	MotherName         string `bson:"motherName,omitempty" json:"motherName,omitempty"`
	GuardianName       string `bson:"guardianName" json:"guardianName" validate:"required,max=120"`
	GuardianPhone      string `bson:"guardianPhone" json:"guardianPhone" validate:"required,max=30"`
	GuardianEmail      string `bson:"guardianEmail" json:"guardianEmail" validate:"required,email"`
	GuardianOccupation string `bson:"guardianOccupation,omitempty" json:"guardianOccupation,omitempty"`

	Address    string `bson:"address" json:"address" validate:"required,max=300"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	District   string `bson:"district,omitempty" json:"district,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`

	PhotoURL            string `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	BirthCertificateURL string `bson:"birthCertificateUrl,omitempty" json:"birthCertificateUrl,omitempty"`
	PreviousResultURL   string `bson:"previousResultUrl,omitempty" json:"previousResultUrl,omitempty"`

	PaymentReference string `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	PaymentMethod    string `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`

	Status string `bson:"status" json:"status" validate:"required,oneof=pending approved rejected"`
	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
}
