package model

// Report is the assembled outcome of one diagnostic interaction.
// Field names mirror the JSON contract of the diagnosis endpoint.
// SecondDisease and SecondDescription are present only when the refined
// prediction differs from the initial one.
type Report struct {
	Severity          string   `json:"severity"`
	Symptoms          []string `json:"symptoms"`
	Disease           string   `json:"disease"`
	Description       string   `json:"description"`
	Precautions       []string `json:"precautions"`
	SecondDisease     string   `json:"second_disease,omitempty"`
	SecondDescription string   `json:"second_description,omitempty"`
}
