package model

type ExplainInput struct {
	EquipmentName string `json:"equipmentName" validate:"required"`
	Query         string `json:"query" validate:"required"`
}

type ExplainOutput struct {
	Explanation string `json:"explanation" validate:"required"`
}
