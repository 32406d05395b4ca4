package model

// Values the model is instructed to return for anything that is not lab
// equipment.
const (
	RejectedName        = "Not Laboratory Equipment"
	RejectedDescription = "This item is not laboratory equipment"
	RejectedCategory    = "Non-laboratory item"
)

// IdentifyInput carries one captured frame as a data URI
// (data:<mimetype>;base64,<encoded_data>).
type IdentifyInput struct {
	PhotoDataURI string `json:"photoDataUri" validate:"required,startswith=data:"`
}

// Identification is the model's verdict on one captured frame.
type Identification struct {
	EquipmentName         string  `json:"equipmentName" validate:"required"`
	Description           string  `json:"description" validate:"required"`
	Category              string  `json:"category" validate:"required"`
	IsLaboratoryEquipment bool    `json:"isLaboratoryEquipment"`
	RejectionReason       *string `json:"rejectionReason,omitempty"`
}

// Rejected reports whether the model turned the item down.
func (i Identification) Rejected() bool {
	return !i.IsLaboratoryEquipment
}

// Reason returns the rejection reason or "".
func (i Identification) Reason() string {
	if i.RejectionReason == nil {
		return ""
	}
	return *i.RejectionReason
}
