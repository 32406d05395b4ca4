package flows

import "github.com/agenthands/labscan/internal/llm"

// IdentifyReplySchema is the shape asked of the model for an identification.
var IdentifyReplySchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"equipmentName":         {Type: llm.TypeString, Description: "The name of the identified lab equipment."},
		"description":           {Type: llm.TypeString, Description: "A detailed description of the lab equipment and its uses."},
		"category":              {Type: llm.TypeString, Description: "The category of the lab equipment (e.g., glassware, heating apparatus)."},
		"isLaboratoryEquipment": {Type: llm.TypeBoolean, Description: "Whether the identified item is actually laboratory equipment."},
		"rejectionReason":       {Type: llm.TypeString, Nullable: true, Description: "Reason for rejection if the item is not laboratory equipment."},
	},
	Required: []string{"equipmentName", "description", "category", "isLaboratoryEquipment"},
}

// ExplainReplySchema is the shape asked of the model for an answer.
var ExplainReplySchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"explanation": {Type: llm.TypeString, Description: "A clear and concise explanation of the lab equipment and the answer to the query."},
	},
	Required: []string{"explanation"},
}
